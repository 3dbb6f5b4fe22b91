package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	echoapi "github.com/schoolhub/console/apps/api/echo"
	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/export"
	"github.com/schoolhub/console/core/listview"
	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/store"
	"github.com/schoolhub/console/storage/fixtures"
)

var (
	nowFunc       = time.Now    // mockable
	writeFileFunc = os.WriteFile // mockable

	errHelp = errors.New("help provided")

	exportSearchFields = []string{"firstName", "lastName", "email", "grade", "className"}
)

type commandLine struct {
	conf   *core.Config
	source store.Source
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  token -role ROLE [-ttl DURATION]                              - issue an API token for a role")
	fmt.Fprintln(cli.out, "  nav -role ROLE                                                - print the menu and capabilities of a role")
	fmt.Fprintln(cli.out, "  export [-format csv|xlsx] [-search TERM] [-sort FIELD] [-out PATH] - export students")
	fmt.Fprintln(cli.out, "  fixtures -out PATH                                            - write the sample dataset as YAML")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	tokenCmd := cli.newFlagSet("token")
	tokenRole := tokenCmd.String("role", "", "The role carried by the token: admin, teacher, parent or student.")
	tokenTTL := tokenCmd.Duration("ttl", cli.conf.Server.TokenExpirationDelta, "How long the token stays valid.")

	navCmd := cli.newFlagSet("nav")
	navRole := navCmd.String("role", "", "The role to describe.")

	exportCmd := cli.newFlagSet("export")
	exportFormat := exportCmd.String("format", string(export.FormatCSV), "Output format: csv or xlsx.")
	exportSearch := exportCmd.String("search", "", "Only export students matching this term.")
	exportSort := exportCmd.String("sort", "", "Sort by this field; prefix with - for descending.")
	exportOut := exportCmd.String("out", "", "Output file. Defaults to students-<date>.<format>.")

	fixturesCmd := cli.newFlagSet("fixtures")
	fixturesOut := fixturesCmd.String("out", "", "Output file.")

	switch args[1] {
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		role, err := parseRole(*tokenRole)
		if err != nil {
			tokenCmd.Usage()
			return err
		}
		return cli.token(role, *tokenTTL)
	case "nav":
		if err := navCmd.Parse(args[2:]); err != nil {
			return err
		}
		role, err := parseRole(*navRole)
		if err != nil {
			navCmd.Usage()
			return err
		}
		return cli.nav(role)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		format, err := export.ParseFormat(*exportFormat)
		if err != nil {
			exportCmd.Usage()
			return err
		}
		return cli.exportStudents(format, *exportSearch, *exportSort, *exportOut)
	case "fixtures":
		if err := fixturesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *fixturesOut == "" {
			fixturesCmd.Usage()
			return errHelp
		}
		return cli.fixtures(*fixturesOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func parseRole(s string) (access.Role, error) {
	if s == "" {
		return "", errHelp
	}
	return access.ParseRole(core.CleanString(s, true /* lower */))
}

func (cli *commandLine) token(role access.Role, ttl time.Duration) error {
	claims := echoapi.NewClaims(role, cli.conf.AppName, ttl, nowFunc())
	token, err := echoapi.GenerateToken(cli.conf.SecretKey, claims)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}

func (cli *commandLine) nav(role access.Role) error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	for _, item := range access.Navigation(role) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Label, item.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	caps := make([]string, 0)
	for _, c := range access.Granted(role) {
		caps = append(caps, string(c))
	}
	fmt.Fprintf(cli.out, "\ncapabilities: %s\n", strings.Join(caps, ", "))
	return nil
}

// exportStudents loads the dataset into a fresh store and writes the matching students.
func (cli *commandLine) exportStudents(format export.Format, search, sort, out string) error {
	s := store.New(store.WithSeedDelay(0))
	if err := s.Initialize(context.Background(), cli.source); err != nil {
		return err
	}

	v := listview.NewView[school.Student](exportSearchFields)
	if strings.HasPrefix(sort, "-") {
		sort, v.SortDir = sort[1:], listview.Desc
	}
	v.SortField = sort
	v.SetSearch(core.CleanString(search))
	students := v.Items(s.State().Students)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, students); err != nil {
		return err
	}
	if out == "" {
		out = export.FileName(format, nowFunc())
	}
	if err := writeFileFunc(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s (%d students): %s\n", export.MsgExported, len(students), out)
	return nil
}

func (cli *commandLine) fixtures(out string) error {
	data, err := fixtures.Encode(fixtures.Sample())
	if err != nil {
		return err
	}
	return writeFileFunc(out, data, 0o644)
}
