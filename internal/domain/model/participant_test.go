package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParticipant(t *testing.T) {
	Convey("Given a participant with a history", t, func() {
		p := &model.Participant{
			Firstname: "Anna",
			Lastname:  "Wolf",
			Gender:    types.Women,
			PersonID:  "7",
			Competitions: []model.CompetitionReference{
				{Name: "comp=1.json", Rank: "3", Discipline: types.Lead},
				{Name: "comp=1.json", Rank: "9", Discipline: types.Lead},
				{Name: "comp=2.json", Rank: "", Discipline: types.Speed},
			},
		}

		Convey("Then the display name joins first and last name", func() {
			So(p.FullName(), ShouldEqual, "Anna Wolf")
		})

		Convey("Then RankIn returns the first matching entry", func() {
			rank, ok := p.RankIn("comp=1.json")
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, "3")

			rank, ok = p.RankIn("comp=2.json")
			So(ok, ShouldBeTrue)
			So(rank, ShouldBeEmpty)

			_, ok = p.RankIn("comp=3.json")
			So(ok, ShouldBeFalse)
		})

		Convey("Then it encodes with the persisted field names", func() {
			b, err := json.Marshal(p)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"firstname":"Anna","lastname":"Wolf","gender":"Women","PerId":"7",`+
				`"Competitions":[{"name":"comp=1.json","rank":"3","discipline":"Lead"},`+
				`{"name":"comp=1.json","rank":"9","discipline":"Lead"},`+
				`{"name":"comp=2.json","rank":"","discipline":"Speed"}]}`)
		})
	})
}

func TestIndexKeys(t *testing.T) {
	Convey("Given a participant index", t, func() {
		idx := model.ParticipantIndex{"20": {}, "100": {}, "3": {}}

		Convey("Then ids come back in lexical order", func() {
			So(idx.IDs(), ShouldResemble, []string{"100", "20", "3"})
		})

		Convey("Then name keys join with a colon", func() {
			So(model.NameKey("Anna", "Wolf"), ShouldEqual, "Anna:Wolf")
			So(model.NameKey("", ""), ShouldEqual, ":")
		})
	})
}
