package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/okian/crux/internal/cli"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseList(t *testing.T) {
	Convey("Given a comma separated name list", t, func() {
		names := cli.ParseList(" Anna:Wolf, ,Max:Berg ")

		Convey("Then names are trimmed and blanks dropped", func() {
			So(names, ShouldResemble, []string{"Anna:Wolf", "Max:Berg"})
		})

		Convey("And an empty list yields nothing", func() {
			So(cli.ParseList(""), ShouldBeEmpty)
		})
	})
}

func TestReadNames(t *testing.T) {
	Convey("Given a names file", t, func() {
		in := strings.NewReader("Anna Wolf\n\n  Max  von Berg\nSolo\n")

		names, err := cli.ReadNames(in)

		Convey("Then each line splits at the first space", func() {
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"Anna:Wolf", "Max:von Berg", "Solo:"})
		})
	})
}

func TestPrompt(t *testing.T) {
	Convey("Given an interactive session", t, func() {
		var out bytes.Buffer
		in := strings.NewReader("Wolf\n Anna \nBerg\nMax\ndone\n\n")

		names, err := cli.Prompt(in, &out)

		Convey("Then names are collected until the stop word", func() {
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"Anna:Wolf", "Max:Berg"})
			So(out.String(), ShouldStartWith, "Nachname: Vorname: ")
		})
	})

	Convey("Given input ending without the stop word", t, func() {
		names, err := cli.Prompt(strings.NewReader("Wolf\nAnna\nBerg\n"), &bytes.Buffer{})

		Convey("Then complete pairs are kept", func() {
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"Anna:Wolf"})
		})
	})
}
