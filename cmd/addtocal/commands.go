package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/urfave/cli"

	"github.com/goliatone/go-addtocal/adapters/civicrm"
	bunrepo "github.com/goliatone/go-addtocal/internal/storage/bun"
	"github.com/goliatone/go-addtocal/internal/storage/memory"
	"github.com/goliatone/go-addtocal/pkg/addtocal"
	"github.com/goliatone/go-addtocal/pkg/commands"
	"github.com/goliatone/go-addtocal/pkg/config"
	"github.com/goliatone/go-addtocal/pkg/eventstore"
	"github.com/goliatone/go-addtocal/pkg/interfaces/logger"
)

var eventFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "event",
		Usage: "Event id",
	},
	&cli.StringFlag{
		Name:  "title",
		Usage: "Event title, used when no database is given",
	},
	&cli.StringFlag{
		Name:  "start",
		Usage: "Event start in RFC 3339, used when no database is given",
	},
	&cli.DurationFlag{
		Name:  "duration",
		Usage: "Event duration",
		Value: time.Hour,
	},
	&cli.StringFlag{
		Name:  "out",
		Usage: "Output file, defaults to stdout",
	},
}

var PageCmd = cli.Command{
	Name:      "page",
	Usage:     "Splices calendar links into a rendered event page",
	ArgsUsage: "FILE",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "kind",
			Usage: "Page kind",
			Value: config.PageEventInfo,
		},
	}, eventFlags...),
	Action: alterPage,
}

var EmailCmd = cli.Command{
	Name:      "email",
	Usage:     "Replaces the calendar download link in an event receipt email",
	ArgsUsage: "HTML_FILE [TEXT_FILE]",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "variant",
			Usage: "Message template variant",
			Value: civicrm.EmailOnlineReceipt,
		},
		&cli.StringFlag{
			Name:  "locale",
			Usage: "Recipient locale",
		},
	}, eventFlags...),
	Action: alterEmail,
}

func alterPage(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing page file")
	}
	eventID := strings.TrimSpace(c.String("event"))
	if eventID == "" {
		return fmt.Errorf("missing --event")
	}
	module, registry, closeFn, err := loadModule(c)
	if err != nil {
		return err
	}
	defer closeFn()

	kind := c.String("kind")
	property, ok := module.Config().Pages[kind]
	if !ok {
		return fmt.Errorf("unknown page kind %q", kind)
	}
	content, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	var result commands.PageResult
	err = registry.RenderPage.Execute(context.Background(), commands.RenderPage{
		Content:     string(content),
		PageKind:    kind,
		PageContext: map[string]any{property: eventID},
		Result:      &result,
	})
	if err != nil {
		return err
	}
	if !result.Altered {
		return fmt.Errorf("no calendar links placeholder in %s", c.Args().First())
	}
	return write(c.String("out"), result.Content)
}

func alterEmail(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing email html file")
	}
	eventID := strings.TrimSpace(c.String("event"))
	if eventID == "" {
		return fmt.Errorf("missing --event")
	}
	module, registry, closeFn, err := loadModule(c)
	if err != nil {
		return err
	}
	defer closeFn()

	html, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	var text []byte
	if c.NArg() > 1 {
		if text, err = os.ReadFile(c.Args().Get(1)); err != nil {
			return err
		}
	}

	cfg := module.Config()
	var result commands.EmailResult
	err = registry.BuildEmail.Execute(context.Background(), commands.BuildEmail{
		Params: addtocal.EmailParams{
			GroupName: cfg.Email.Group,
			ValueName: c.String("variant"),
			TplParams: map[string]any{"event": map[string]any{"id": eventID}},
			Locale:    c.String("locale"),
			HTML:      string(html),
			Text:      string(text),
		},
		Result: &result,
	})
	if err != nil {
		return err
	}
	if !result.Altered {
		return fmt.Errorf("no calendar download link in email for variant %q", c.String("variant"))
	}
	out := result.Params.HTML
	if result.Params.Text != "" {
		out += "\n\n" + result.Params.Text
	}
	return write(c.String("out"), out)
}

func loadModule(c *cli.Context) (*addtocal.Module, *commands.Registry, func(), error) {
	cfg, err := loadConfig(c.GlobalString("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	var log logger.Logger = &logger.Nop{}
	if c.GlobalBool("debug") {
		log = logger.New(os.Stderr)
	}

	events, closeFn, err := loadEvents(c)
	if err != nil {
		return nil, nil, nil, err
	}

	module, err := addtocal.NewModule(addtocal.ModuleOptions{
		Config: cfg,
		Logger: log,
		Events: events,
	})
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	registry, err := commands.New(commands.Dependencies{Hooks: module.Hooks(), Logger: log})
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return module, registry, closeFn, nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Defaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	input := map[string]any{}
	if err := json.Unmarshal(raw, &input); err != nil {
		return config.Config{}, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	return config.Load(input)
}

func loadEvents(c *cli.Context) (eventstore.Source, func(), error) {
	noop := func() {}
	if path := c.GlobalString("db"); path != "" {
		sqldb, err := sql.Open(sqliteshim.DriverName(), path)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open %s: %w", path, err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		return bunrepo.NewEventRepository(db), func() { _ = db.Close() }, nil
	}

	title := strings.TrimSpace(c.String("title"))
	if title == "" {
		return nil, noop, nil
	}
	start, err := time.Parse(time.RFC3339, c.String("start"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --start: %w", err)
	}
	return memory.NewEventRepository(eventstore.Event{
		ID:    c.String("event"),
		Title: title,
		Start: start,
		End:   start.Add(c.Duration("duration")),
	}), noop, nil
}

func write(path, content string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := io.WriteString(w, content)
	return err
}
