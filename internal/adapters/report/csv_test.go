package report_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/crux/internal/adapters/report"
	"github.com/okian/crux/internal/domain/crossref"
	"github.com/okian/crux/internal/domain/index"
	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func results() []*crossref.Result {
	idx := model.ParticipantIndex{
		"1": {PersonID: "1", Firstname: "Anna", Lastname: "Wolf", Gender: types.Women, Competitions: []model.CompetitionReference{
			{Name: "comp=a.json", Rank: "3", Discipline: types.Lead},
			{Name: "comp=b.json", Rank: "1", Discipline: types.Lead},
		}},
		"2": {PersonID: "2", Firstname: "Max", Lastname: "Berg", Competitions: []model.CompetitionReference{
			{Name: "comp=b.json", Rank: "", Discipline: types.Lead},
		}},
	}
	return crossref.Aggregate([]string{"Anna:Wolf", "Max:Berg"}, index.Names(idx), idx)
}

func TestRender(t *testing.T) {
	Convey("Given aggregated results", t, func() {
		rs := results()

		Convey("When rendering the lead matrix", func() {
			var buf bytes.Buffer
			So(report.Render(&buf, rs[2]), ShouldBeNil)

			Convey("Then rows hold ranks per competition column", func() {
				So(buf.String(), ShouldEqual, ""+
					"PersonID,Name,Gender,comp=a.json,comp=b.json\n"+
					"1,Anna Wolf,Women,3,1\n"+
					"2,Max Berg,,,\n")
			})
		})

		Convey("When rendering an empty discipline", func() {
			var buf bytes.Buffer
			So(report.Render(&buf, rs[0]), ShouldBeNil)

			Convey("Then only the header is written", func() {
				So(buf.String(), ShouldEqual, "PersonID,Name,Gender\n")
			})
		})
	})
}

func TestWriter(t *testing.T) {
	Convey("Given a writer over a fresh directory", t, func() {
		dir := filepath.Join(t.TempDir(), "reports")
		w := report.NewWriter(dir)

		paths, err := w.Write(context.Background(), results())

		Convey("Then one file per discipline is written in reporting order", func() {
			So(err, ShouldBeNil)
			So(paths, ShouldResemble, []string{
				filepath.Join(dir, "bouldering.csv"),
				filepath.Join(dir, "speed.csv"),
				filepath.Join(dir, "lead.csv"),
				filepath.Join(dir, "combined.csv"),
			})
			b, readErr := os.ReadFile(paths[2])
			So(readErr, ShouldBeNil)
			So(string(b), ShouldStartWith, "PersonID,Name,Gender,comp=a.json")
		})
	})
}
