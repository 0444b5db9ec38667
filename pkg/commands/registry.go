package commands

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-addtocal/pkg/addtocal"
	"github.com/goliatone/go-addtocal/pkg/interfaces/logger"
	"github.com/goliatone/go-addtocal/pkg/splice"
)

var (
	// ErrHooksRequired indicates the registry was built without hooks.
	ErrHooksRequired = errors.New("commands: hooks are required")
	// ErrResultRequired is returned when a message carries no result holder.
	ErrResultRequired = errors.New("commands: result holder is required")
)

// RenderPage asks for the calendar section of a rendered page to be filled.
// The outcome is written to Result.
type RenderPage struct {
	Content     string         `json:"content"`
	PageKind    string         `json:"page_kind"`
	PageContext map[string]any `json:"page_context"`
	Result      *PageResult    `json:"-"`
}

// PageResult holds the page content to emit. Altered is false when the page
// was passed through.
type PageResult struct {
	Content string
	Altered bool
}

// BuildEmail asks for the calendar link of an outbound email to be replaced.
type BuildEmail struct {
	Params addtocal.EmailParams `json:"params"`
	Result *EmailResult         `json:"-"`
}

// EmailResult holds the email to send.
type EmailResult struct {
	Params  addtocal.EmailParams
	Altered bool
}

type hooks interface {
	AlterPage(ctx context.Context, content, pageKind string, pageContext map[string]any) (string, error)
	AlterEmail(ctx context.Context, params addtocal.EmailParams) (addtocal.EmailParams, error)
}

// Registry exposes go-command compatible handlers backed by the hooks.
type Registry struct {
	RenderPage command.Commander[RenderPage]
	BuildEmail command.Commander[BuildEmail]
}

// Dependencies wires the registry.
type Dependencies struct {
	Hooks  hooks
	Logger logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	if deps.Hooks == nil {
		return nil, ErrHooksRequired
	}
	log := logger.OrNop(deps.Logger)
	return &Registry{
		RenderPage: renderPageCommand{hooks: deps.Hooks, logger: log},
		BuildEmail: buildEmailCommand{hooks: deps.Hooks, logger: log},
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.RenderPage,
		r.BuildEmail,
	}
}

type renderPageCommand struct {
	hooks  hooks
	logger logger.Logger
}

// Execute always fills Result; the error reports failures other than a page
// that does not apply.
func (c renderPageCommand) Execute(ctx context.Context, msg RenderPage) error {
	if msg.Result == nil {
		return ErrResultRequired
	}
	content, err := c.hooks.AlterPage(ctx, msg.Content, msg.PageKind, msg.PageContext)
	if err != nil {
		*msg.Result = PageResult{Content: msg.Content}
		if skipped(err) {
			c.logger.Debug("render page passed through", logger.F("page_kind", msg.PageKind), logger.F("reason", err))
			return nil
		}
		return err
	}
	*msg.Result = PageResult{Content: content, Altered: true}
	return nil
}

type buildEmailCommand struct {
	hooks  hooks
	logger logger.Logger
}

func (c buildEmailCommand) Execute(ctx context.Context, msg BuildEmail) error {
	if msg.Result == nil {
		return ErrResultRequired
	}
	params, err := c.hooks.AlterEmail(ctx, msg.Params)
	if err != nil {
		*msg.Result = EmailResult{Params: msg.Params}
		if skipped(err) {
			c.logger.Debug("build email passed through",
				logger.F("group", msg.Params.GroupName),
				logger.F("variant", msg.Params.ValueName),
				logger.F("reason", err),
			)
			return nil
		}
		return err
	}
	*msg.Result = EmailResult{Params: params, Altered: true}
	return nil
}

func skipped(err error) bool {
	return errors.Is(err, addtocal.ErrNotApplicable) || errors.Is(err, splice.ErrPlaceholderAbsent)
}
