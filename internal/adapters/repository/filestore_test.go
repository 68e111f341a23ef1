package repository_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/crux/internal/adapters/repository"
	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleIndex() model.ParticipantIndex {
	return model.ParticipantIndex{
		"200": {PersonID: "200", Firstname: "Emilia", Lastname: "Merz", Gender: types.Unknown, Competitions: []model.CompetitionReference{
			{Name: "comp=2.json", Rank: "", Discipline: types.Speed},
		}},
		"100": {PersonID: "100", Firstname: "Anna", Lastname: "Wolf", Gender: types.Women, Competitions: []model.CompetitionReference{
			{Name: "comp=1.json", Rank: "1", Discipline: types.Bouldering},
			{Name: "comp=2.json", Rank: "4", Discipline: types.Speed},
		}},
	}
}

func TestFileStore(t *testing.T) {
	Convey("Given a file store in a temp directory", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "participants.json")
		store := repository.NewFileStore(path)

		Convey("When loading before anything was saved", func() {
			_, err := store.Load(ctx)

			Convey("Then it should fail with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When saving and loading an index", func() {
			So(store.Save(ctx, sampleIndex()), ShouldBeNil)
			loaded, err := store.Load(ctx)

			Convey("Then the loaded index equals the saved one", func() {
				So(err, ShouldBeNil)
				So(loaded, ShouldResemble, sampleIndex())
			})

			Convey("And the file uses the persisted field names", func() {
				b, _ := os.ReadFile(path)
				So(string(b), ShouldContainSubstring, `"PerId": "100"`)
				So(string(b), ShouldContainSubstring, `"Competitions"`)
				So(string(b), ShouldContainSubstring, `"gender": null`)
				So(string(b), ShouldContainSubstring, `"discipline": "Bouldering"`)
			})

			Convey("And no temp files are left behind", func() {
				entries, _ := os.ReadDir(filepath.Dir(path))
				So(entries, ShouldHaveLength, 1)
			})
		})

		Convey("When saving the same index twice", func() {
			So(store.Save(ctx, sampleIndex()), ShouldBeNil)
			first, _ := os.ReadFile(path)
			So(store.Save(ctx, sampleIndex()), ShouldBeNil)
			second, _ := os.ReadFile(path)

			Convey("Then the bytes are identical", func() {
				So(bytes.Equal(first, second), ShouldBeTrue)
			})
		})

		Convey("When the file holds legacy labels and no embedded PerId", func() {
			legacy := `{"7": {"firstname": "Anna", "lastname": "Wolf", "gender": "Damen",
				"Competitions": [{"name": "comp=1.json", "rank": "2", "discipline": "Bouldern"}]}}`
			So(os.WriteFile(path, []byte(legacy), 0o600), ShouldBeNil)

			idx, err := store.Load(ctx)

			Convey("Then it is decoded onto the current tags", func() {
				So(err, ShouldBeNil)
				So(idx["7"].PersonID, ShouldEqual, "7")
				So(idx["7"].Gender, ShouldEqual, types.Women)
				So(idx["7"].Competitions[0].Discipline, ShouldEqual, types.Bouldering)
			})
		})

		Convey("When the file is corrupt", func() {
			So(os.WriteFile(path, []byte(`{"7": `), 0o600), ShouldBeNil)
			_, err := store.Load(ctx)

			Convey("Then it should fail with ErrCorrupt", func() {
				So(errors.Is(err, repository.ErrCorrupt), ShouldBeTrue)
			})
		})

		Convey("When saving into a missing directory", func() {
			bad := repository.NewFileStore(filepath.Join(t.TempDir(), "nope", "participants.json"))
			err := bad.Save(ctx, sampleIndex())

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When custom options are applied", func() {
			compact := repository.NewFileStore(path, repository.WithIndent(""), repository.WithFileMode(0o600))
			So(compact.Save(ctx, sampleIndex()), ShouldBeNil)

			Convey("Then the file mode is honored", func() {
				info, err := os.Stat(path)
				So(err, ShouldBeNil)
				So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))
				So(compact.Path(), ShouldEqual, path)
			})
		})
	})
}
