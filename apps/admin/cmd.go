package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	echoapi "github.com/trezcool/smartedu/apps/api/echo"
	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	chatSvc echoapi.ChatResponder
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  ask -role ROLE [SESSION FLAGS] [-json] MESSAGE - answer MESSAGE as that user would see it")
	fmt.Fprintln(cli.out, "  token -role ROLE [SESSION FLAGS] - print a signed session token")
	fmt.Fprintln(cli.out, "Session flags:")
	fmt.Fprintln(cli.out, "  [-id ID] [-table TABLE] [-branch BRANCH] [-year SY|TY|BE] [-roll ROLL_NO] [-username USERNAME]")
}

// sessionFlags registers the flags describing who is asking.
func sessionFlags(fs *flag.FlagSet) func() (chat.Session, error) {
	id := fs.String("id", "1", "The user's id.")
	role := fs.String("role", "", "One of student, teacher, hod, principal.")
	table := fs.String("table", "", "The user's table tag, e.g. Students_TY_CSE.")
	branch := fs.String("branch", "", "The staff member's branch.")
	year := fs.String("year", "", "The user's year level: SY, TY or BE.")
	rollNo := fs.String("roll", "", "The student's roll number.")
	username := fs.String("username", "", "The user's username.")

	return func() (chat.Session, error) {
		sess := chat.Session{
			ID:       *id,
			Role:     chat.Role(*role),
			Table:    *table,
			Branch:   *branch,
			Year:     *year,
			RollNo:   *rollNo,
			Username: *username,
		}
		if !sess.Role.Valid() {
			return sess, fmt.Errorf("invalid role %q", *role)
		}
		return sess, nil
	}
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	askCmd := flag.NewFlagSet("ask", flag.ContinueOnError)
	askCmd.SetOutput(cli.out)
	askSession := sessionFlags(askCmd)
	askJSON := askCmd.Bool("json", false, "Print the raw JSON response.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	tokenSession := sessionFlags(tokenCmd)

	switch args[1] {
	case "ask":
		if err := askCmd.Parse(args[2:]); err != nil {
			return err
		}
		if askCmd.NArg() == 0 {
			askCmd.Usage()
			return errHelp
		}
		sess, err := askSession()
		if err != nil {
			return err
		}
		return cli.ask(sess, strings.Join(askCmd.Args(), " "), *askJSON || !isTerminalFunc())
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		sess, err := tokenSession()
		if err != nil {
			return err
		}
		return cli.token(sess)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) ask(sess chat.Session, message string, asJSON bool) error {
	resp, err := cli.chatSvc.Respond(context.Background(), sess, "", message)
	if err != nil {
		return err
	}
	if asJSON {
		return renderJSON(cli.out, resp)
	}
	renderResponse(cli.out, resp)
	return nil
}

func (cli *commandLine) token(sess chat.Session) error {
	token, err := echoapi.GenerateToken(echoapi.NewSessionClaims(sess, cli.conf), cli.conf.SecretKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
