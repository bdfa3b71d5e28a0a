package editor

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Show(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	AddLink(ctx context.Context, args []string) error
	RemoveLink(ctx context.Context, args []string) error
	Link(ctx context.Context, args []string) error
	Photo(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Preview(ctx context.Context, args []string) error
	URL(ctx context.Context, args []string) error
	Dirty() bool
}

const helpText = `Available commands:
  show                          show the card
  set <field> <value...>        set a field (empty value clears it)
  addlink                       append an empty link
  rmlink <n>                    remove link n
  link <n> label|url <value...> edit link n
  photo <path>                  upload a photo
  save                          save the card
  export [dir]                  write the .vcf contact file
  preview                       print the vCard
  url                           print the public card URL
  exit | quit                   leave the editor`

// runREPL reads one command per line and dispatches it to a. Errors are
// reported and the loop keeps going. It returns on EOF, exit or quit.
func runREPL(ctx context.Context, a execIface, promptFn func() string, scanner *bufio.Scanner) {
	for {
		if p := promptFn(); p != "" {
			printlnFn(p)
		}
		if !scanner.Scan() {
			return
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		head := splitArgs(line, 2)
		if len(head) == 0 {
			continue
		}
		cmd, rest := head[0], ""
		if len(head) > 1 {
			rest = head[1]
		}
		args := strings.Fields(rest)

		var err error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "show":
			err = a.Show(ctx, args)
		case "set":
			err = a.Set(ctx, splitArgs(rest, 2))
		case "addlink":
			err = a.AddLink(ctx, args)
		case "rmlink":
			err = a.RemoveLink(ctx, args)
		case "link":
			err = a.Link(ctx, splitArgs(rest, 3))
		case "photo":
			err = a.Photo(ctx, args)
		case "save":
			err = a.Save(ctx, args)
		case "export":
			err = a.Export(ctx, args)
		case "preview":
			err = a.Preview(ctx, args)
		case "url":
			err = a.URL(ctx, args)
		case "exit", "quit":
			if a.Dirty() {
				printlnFn("Unsaved changes discarded.")
			}
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

// splitArgs splits s into at most n arguments. The first n-1 are
// whitespace-separated tokens; the last is the rest of s as typed, with only
// leading whitespace removed.
func splitArgs(s string, n int) []string {
	var out []string
	for len(out) < n-1 {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out
		}
		i := strings.IndexAny(s, " \t")
		if i < 0 {
			return append(out, s)
		}
		out = append(out, s[:i])
		s = s[i:]
	}
	if s = strings.TrimLeft(s, " \t"); s != "" {
		out = append(out, s)
	}
	return out
}
