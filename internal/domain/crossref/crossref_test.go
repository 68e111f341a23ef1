package crossref_test

import (
	"testing"

	"github.com/okian/crux/internal/domain/crossref"
	"github.com/okian/crux/internal/domain/index"
	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() model.ParticipantIndex {
	return model.ParticipantIndex{
		"1": {PersonID: "1", Firstname: "Anna", Lastname: "Wolf", Gender: types.Women, Competitions: []model.CompetitionReference{
			{Name: "comp=lead.json", Rank: "3", Discipline: types.Lead},
			{Name: "comp=speed.json", Rank: "1", Discipline: types.Speed},
		}},
		"2": {PersonID: "2", Firstname: "Max", Lastname: "Berg", Gender: types.Men, Competitions: []model.CompetitionReference{
			{Name: "comp=boulder.json", Rank: "2", Discipline: types.Bouldering},
		}},
		"3": {PersonID: "3", Firstname: "Max", Lastname: "Berg", Competitions: []model.CompetitionReference{
			{Name: "comp=boulder2.json", Rank: "8", Discipline: types.Bouldering},
			{Name: "comp=lead.json", Rank: "5", Discipline: types.Lead},
		}},
	}
}

func byDiscipline(results []*crossref.Result) map[types.Discipline]*crossref.Result {
	m := make(map[types.Discipline]*crossref.Result, len(results))
	for _, r := range results {
		m[r.Discipline] = r
	}
	return m
}

func TestAggregate(t *testing.T) {
	Convey("Given a participant index and its name index", t, func() {
		idx := fixture()
		names := index.Names(idx)

		Convey("When querying one person with a lead and a speed competition", func() {
			results := crossref.Aggregate([]string{"Anna:Wolf"}, names, idx)
			got := byDiscipline(results)

			Convey("Then exactly four results come back in reporting order", func() {
				So(results, ShouldHaveLength, 4)
				So(results[0].Discipline, ShouldEqual, types.Bouldering)
				So(results[1].Discipline, ShouldEqual, types.Speed)
				So(results[2].Discipline, ShouldEqual, types.Lead)
				So(results[3].Discipline, ShouldEqual, types.Combined)
			})

			Convey("And lead and speed each hold the competition and the person", func() {
				So(got[types.Lead].Competitions(), ShouldResemble, []string{"comp=lead.json"})
				So(got[types.Speed].Competitions(), ShouldResemble, []string{"comp=speed.json"})
				_, inLead := got[types.Lead].Participant("1")
				_, inSpeed := got[types.Speed].Participant("1")
				So(inLead, ShouldBeTrue)
				So(inSpeed, ShouldBeTrue)
			})

			Convey("And bouldering and combined are empty", func() {
				So(got[types.Bouldering].Empty(), ShouldBeTrue)
				So(got[types.Combined].Empty(), ShouldBeTrue)
				So(got[types.Combined].Participants(), ShouldBeEmpty)
			})
		})

		Convey("When the query contains an unknown name", func() {
			var results []*crossref.Result
			So(func() {
				results = crossref.Aggregate([]string{"Nobody:Here", "Anna:Wolf"}, names, idx)
			}, ShouldNotPanic)

			Convey("Then it is skipped and known names still aggregate", func() {
				total := 0
				for _, r := range results {
					total += len(r.Participants())
				}
				So(total, ShouldEqual, 2)
			})
		})

		Convey("When querying a name shared by two person ids", func() {
			got := byDiscipline(crossref.Aggregate([]string{"Max:Berg"}, names, idx))

			Convey("Then both persons are aggregated", func() {
				boulder := got[types.Bouldering]
				So(boulder.Participants(), ShouldHaveLength, 2)
				So(boulder.Competitions(), ShouldResemble, []string{"comp=boulder.json", "comp=boulder2.json"})
				_, inLead := got[types.Lead].Participant("3")
				So(inLead, ShouldBeTrue)
			})
		})

		Convey("When persons share a competition or are queried twice", func() {
			got := byDiscipline(crossref.Aggregate([]string{"Anna:Wolf", "Max:Berg", "Anna:Wolf"}, names, idx))
			lead := got[types.Lead]

			Convey("Then the competition set and participant map stay deduplicated", func() {
				So(lead.Competitions(), ShouldResemble, []string{"comp=lead.json"})
				So(lead.Participants(), ShouldHaveLength, 2)
				So(lead.Participants()[0].PersonID, ShouldEqual, "1")
				So(lead.HasCompetition("comp=lead.json"), ShouldBeTrue)
				So(lead.HasCompetition("comp=speed.json"), ShouldBeFalse)
			})
		})

		Convey("When nothing is queried", func() {
			results := crossref.Aggregate(nil, names, idx)

			Convey("Then four empty results are still produced", func() {
				So(results, ShouldHaveLength, 4)
				for _, r := range results {
					So(r.Empty(), ShouldBeTrue)
				}
			})
		})
	})
}

func TestResolved(t *testing.T) {
	Convey("Given a name index", t, func() {
		names := model.NameIndex{"Anna:Wolf": {"1"}}

		Convey("When splitting queries", func() {
			found, missing := crossref.Resolved([]string{"Anna:Wolf", "X:Y"}, names)

			Convey("Then known and unknown names are separated in order", func() {
				So(found, ShouldResemble, []string{"Anna:Wolf"})
				So(missing, ShouldResemble, []string{"X:Y"})
			})
		})
	})
}
