package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/buildings"
	"github.com/Ziming-L/wwu-course-navigator/internal/entry"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
)

var fieldNames = map[string]entry.Field{
	"name":       entry.FieldCourseName,
	"code":       entry.FieldCourseCode,
	"section":    entry.FieldCourseSection,
	"credits":    entry.FieldCreditHours,
	"crn":        entry.FieldCRN,
	"start-date": entry.FieldStartDate,
	"end-date":   entry.FieldEndDate,
	"start-time": entry.FieldStartTime,
	"end-time":   entry.FieldEndTime,
	"room":       entry.FieldRoom,
	"instructor": entry.FieldInstructor,
}

const composeHelp = `Commands:
  add                    add a new entry and make it current
  select <n>             switch the current entry
  remove <n>             remove an entry
  set <field> <value>    set a field (name, code, section, credits, crn,
                         start-date, end-date, start-time, end-time,
                         room, instructor)
  days <Mon Tue ...>     toggle meeting days
  online                 toggle between Main Campus and Online
  defaults               apply or restore default course info
  building <text>        type into the building field, listing matches
  pick <n>               accept a building suggestion
  show                   print the current entry
  list                   print all entries
  submit                 validate and submit every entry
  view [weekday]         render a day of the fetched schedule
  clear                  clear this session's data on the server
  quit                   end the session`

// compose is the interactive authoring session. One run is one tab: the
// identity is minted on start and discarded on exit, after a best-effort
// cleanup notification to the server.
func newComposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compose",
		Short: "Author course entries interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			ctx := context.Background()
			c := &composer{
				app:        a,
				directory:  buildings.NewDirectory(a.backend, a.logger),
				controller: entry.NewController(entry.NewPipeline(a.dialog), a.dialog, a.backend, a.store, a.logger),
			}
			c.add(ctx)

			var once sync.Once
			teardown := func() {
				once.Do(func() {
					a.resolver.Close()
					a.lifecycle.Shutdown()
					if err := a.identity.Invalidate(); err != nil {
						a.logger.Warn("session identity not discarded", zap.Error(err))
					}
					a.dropCachedSchedule()
				})
			}
			defer teardown()

			// An interrupted session still tells the server to drop its
			// data; the notification is best effort and short-lived.
			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigs)
			go func() {
				if _, ok := <-sigs; ok {
					teardown()
					os.Exit(130)
				}
			}()

			return c.loop(ctx)
		},
	}
}

type composer struct {
	app        *app
	directory  *buildings.Directory
	controller *entry.Controller
	current    int
}

func (c *composer) loop(ctx context.Context) error {
	fmt.Println(composeHelp)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("entry %d> ", c.current+1)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Println(composeHelp)
		case "add":
			c.add(ctx)
		case "select":
			c.switchTo(rest)
		case "remove":
			c.remove(rest)
		case "set":
			c.set(rest)
		case "days":
			c.toggleDays(rest)
		case "online":
			c.toggleCampus()
		case "defaults":
			c.editor().ToggleDefaults()
			fmt.Println(c.editor().DefaultsLabel())
		case "building":
			c.typeBuilding(rest)
		case "pick":
			c.pick(rest)
		case "show":
			c.show(c.current)
		case "list":
			for i := range c.controller.Editors() {
				c.show(i)
			}
		case "submit":
			c.submit(ctx)
		case "view":
			c.view(ctx, rest)
		case "clear":
			if _, err := c.app.lifecycle.ClearData(ctx); err != nil {
				color.Red("%s", err)
			}
		default:
			color.Red("unknown command %q, try help", cmd)
		}
	}
}

func (c *composer) editor() *entry.Editor {
	return c.controller.Editors()[c.current]
}

func (c *composer) add(ctx context.Context) {
	c.controller.Add(entry.NewEditor(ctx, c.directory))
	c.current = c.controller.Len() - 1
}

func (c *composer) index(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > c.controller.Len() {
		color.Red("expected an entry number between 1 and %d", c.controller.Len())
		return 0, false
	}
	return n - 1, true
}

func (c *composer) switchTo(arg string) {
	if i, ok := c.index(arg); ok {
		c.current = i
	}
}

func (c *composer) remove(arg string) {
	i, ok := c.index(arg)
	if !ok {
		return
	}
	if c.controller.Len() == 1 {
		color.Red("cannot remove the last entry")
		return
	}
	c.controller.Remove(i)
	if c.current >= c.controller.Len() {
		c.current = c.controller.Len() - 1
	}
}

func (c *composer) set(rest string) {
	key, value, _ := strings.Cut(rest, " ")
	field, ok := fieldNames[key]
	if !ok {
		color.Red("unknown field %q", key)
		return
	}
	ed := c.editor()
	if !ed.Visible(field) || !ed.Enabled(field) {
		color.Red("field %q is not editable right now", key)
		return
	}
	ed.SetField(field, strings.TrimSpace(value))
}

func (c *composer) toggleDays(rest string) {
	ed := c.editor()
	for _, word := range strings.Fields(rest) {
		day, err := canonicalDay(word)
		if err != nil {
			color.Red("%s", err)
			continue
		}
		selected := false
		for _, d := range ed.SelectedDays() {
			if d == day {
				selected = true
				break
			}
		}
		ed.ToggleDay(day, !selected)
	}
	fmt.Println("days:", strings.Join(ed.SelectedDays(), " "))
}

func (c *composer) toggleCampus() {
	ed := c.editor()
	if ed.Campus() == models.CampusOnline {
		ed.SetCampus(models.CampusMain)
	} else {
		ed.SetCampus(models.CampusOnline)
	}
	fmt.Println("campus:", ed.Campus())
}

func (c *composer) typeBuilding(text string) {
	ed := c.editor()
	ed.FocusBuilding()
	ed.SetBuildingText(text)
	items, open := ed.Suggestions()
	if !open || len(items) == 0 {
		fmt.Println("no matching buildings")
		return
	}
	for i, item := range items {
		fmt.Printf("  %d. %s\n", i+1, item.Suggestion())
	}
}

func (c *composer) pick(arg string) {
	ed := c.editor()
	items, open := ed.Suggestions()
	if !open {
		color.Red("no suggestion list is open")
		return
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		color.Red("expected a suggestion number between 1 and %d", len(items))
		return
	}
	ed.SelectSuggestion(n - 1)
	fmt.Println("building:", ed.Value(entry.FieldBuilding))
}

func (c *composer) show(i int) {
	ed := c.controller.Editors()[i]
	marker := " "
	if i == c.current {
		marker = "*"
	}
	fmt.Printf("%s entry %d\n", marker, i+1)
	for _, f := range entry.FieldOrder {
		if !ed.Visible(f) {
			continue
		}
		line := fmt.Sprintf("    %-14s %s", f.String(), ed.Value(f))
		if ed.Flagged(f) {
			line = color.RedString("%s  <- fix", line)
		}
		fmt.Println(line)
	}
	fmt.Println("    days:", strings.Join(ed.SelectedDays(), " "))
	fmt.Println("    campus:", ed.Campus())
}

func (c *composer) submit(ctx context.Context) {
	if err := c.controller.Submit(ctx); err != nil {
		c.app.logger.Debug("submission rejected", zap.Error(err))
		return
	}
	c.app.cacheSchedule(c.app.store.Snapshot())
	if err := c.app.renderSelectedDay(ctx); err != nil {
		color.Red("%s", err)
	}
	c.add(ctx)
}

func (c *composer) view(ctx context.Context, rest string) {
	if !c.app.store.NavEnabled() {
		color.Red("no schedule yet, submit entries first")
		return
	}
	day := c.app.store.Selected()
	if rest != "" {
		parsed, err := canonicalDay(rest)
		if err != nil {
			color.Red("%s", err)
			return
		}
		day = parsed
	}
	if err := c.app.renderDay(ctx, day); err != nil {
		color.Red("%s", err)
	}
}
