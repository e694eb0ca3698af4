package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newShellCmd(a *app) *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "shell [FILE]",
		Short: "Run commands line by line against one engine (stdin when FILE is omitted)",
		Long: "Each non-empty line is one command (create-topic, publish, subscribe,\n" +
			"unsubscribe, list, remove-topic). Lines starting with # are comments.\n" +
			"Subscription labels given with --as stay valid for the whole session.",
		Example: "  notifyd shell scenario.txt\n  printf 'create-topic AAPL 150\\nlist\\n' | notifyd shell",
		Args:    args(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			in := cmd.InOrStdin()
			if len(argv) == 1 {
				f, err := os.Open(argv[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return a.runScript(in, keepGoing)
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Report failing lines and continue instead of stopping")
	return cmd
}

// runScript executes r line by line. Without keepGoing it stops at the first
// failing line; with it, the first error is returned after the last line.
func (a *app) runScript(r io.Reader, keepGoing bool) error {
	sc := bufio.NewScanner(r)
	var first error
	for lineNo := 1; sc.Scan(); lineNo++ {
		fields, err := splitLine(sc.Text())
		if err != nil {
			err = asUsage(err)
		} else if len(fields) == 0 {
			continue
		} else {
			root := newScriptCmd(a)
			root.SetArgs(fields)
			err = root.Execute()
		}
		if err == nil {
			continue
		}
		err = lineError{line: lineNo, err: err}
		fmt.Fprintln(a.errOut, err)
		if !keepGoing {
			return err
		}
		if first == nil {
			first = err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return first
}

type lineError struct {
	line int
	err  error
}

func (e lineError) Error() string { return fmt.Sprintf("line %d: %v", e.line, e.err) }
func (e lineError) Unwrap() error { return e.err }

// splitLine splits on whitespace, honoring single and double quotes. A #
// outside quotes starts a comment.
func splitLine(s string) ([]string, error) {
	var (
		out   []string
		cur   strings.Builder
		quote rune
		inTok bool
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			inTok = true
		case r == '#' && !inTok:
			return out, nil
		case r == ' ' || r == '\t':
			if inTok {
				out = append(out, cur.String())
				cur.Reset()
				inTok = false
			}
		default:
			cur.WriteRune(r)
			inTok = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inTok {
		out = append(out, cur.String())
	}
	return out, nil
}
