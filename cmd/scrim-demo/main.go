// Command scrim-demo is a small tour of the toolkit: a menubar with
// nested menus, stacked layers, an edit prompt, layer repositioning and
// the debug console, all running over the real terminal backend.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/scrim"
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/logbuf"
)

var (
	themeFlag       = pflag.String("theme", "", "path to a YAML theme file")
	autorefreshFlag = pflag.Bool("autorefresh", false, "redraw continuously instead of on input")
	pinnedFlag      = pflag.Bool("pinned-menu", false, "keep the menubar visible at all times")
)

const welcomeText = `Welcome to the scrim demo.

  m        open the menubar
  w a s d  move this layer
  l        toggle the debug console
  Escape   close the front layer
  q        quit`

func main() {
	pflag.Parse()

	// Everything logged lands in the in-memory buffer behind the debug
	// console instead of corrupting the terminal
	slog.SetDefault(slog.New(logbuf.NewHandler(slog.LevelDebug)))

	app, err := scrim.NewTerm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrim-demo: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// Release the terminal before printing the crash, otherwise the
	// trace is unreadable in the alternate screen
	defer func() {
		if r := recover(); r != nil {
			app.Close()
			fmt.Fprintf(os.Stderr, "\nscrim-demo crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if *themeFlag != "" {
		if err := app.LoadThemeFile(*themeFlag); err != nil {
			slog.Warn("theme load failed, keeping the default", "path", *themeFlag, "error", err)
		}
	}
	app.SetAutorefresh(*autorefreshFlag)
	app.SetAutohideMenu(!*pinnedFlag)

	buildMenus(app)
	app.AddLayer(scrim.NewTextView(welcomeText))

	app.AddGlobalCallback(event.Char('q'), func(a *scrim.App) { a.Quit() })
	app.AddGlobalCallback(event.Char('m'), func(a *scrim.App) { a.SelectMenubar() })
	app.AddGlobalCallback(event.Char('l'), func(a *scrim.App) { a.ToggleDebugConsole() })
	app.AddGlobalCallback(event.FromKey(event.KeyEscape), func(a *scrim.App) {
		if a.Screen().Len() > 1 {
			a.PopLayer()
		}
	})

	app.AddGlobalCallback(event.Char('w'), moveFront(0, -1))
	app.AddGlobalCallback(event.Char('a'), moveFront(-1, 0))
	app.AddGlobalCallback(event.Char('s'), moveFront(0, 1))
	app.AddGlobalCallback(event.Char('d'), moveFront(1, 0))

	slog.Info("demo ready")
	app.Run()
}

// moveFront nudges the front layer from wherever the compositor last
// placed it, so a centered layer starts moving from the center
func moveFront(dx, dy int) scrim.Callback {
	return func(a *scrim.App) {
		pos := a.Screen().Offset().Add(geom.New(dx, dy))
		a.RepositionLayer(scrim.FromFront(0), scrim.PositionAbsolute(pos))
	}
}

func buildMenus(app *scrim.App) {
	file := scrim.NewMenuTree().
		Leaf("New", func(*scrim.App) { slog.Info("new file requested") }).
		Leaf("Open...", promptOpen).
		Subtree("Recent", scrim.NewMenuTree().
			Leaf("alpha.txt", openRecent("alpha.txt")).
			Leaf("beta.txt", openRecent("beta.txt"))).
		Delimiter().
		Leaf("Quit", func(a *scrim.App) { a.Quit() })

	help := scrim.NewMenuTree().
		Leaf("About", func(a *scrim.App) {
			a.AddLayer(scrim.NewTextView("scrim demo\n\nstacked layers, menus and themes\nfor the terminal"))
		})

	app.Menubar().
		AddSubtree("File", file).
		AddSubtree("Help", help)
}

// promptOpen pushes an edit prompt; submitting logs the path and closes
// the prompt
func promptOpen(app *scrim.App) {
	edit := scrim.NewEditView().OnSubmit(func(a *scrim.App, path string) {
		a.PopLayer()
		slog.Info("open requested", "path", path)
	})
	edit.SetContent("file.txt")
	app.AddLayer(edit)
}

func openRecent(name string) scrim.Callback {
	return func(*scrim.App) {
		slog.Info("recent file selected", "name", name)
	}
}
