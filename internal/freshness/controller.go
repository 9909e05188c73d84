package freshness

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/stale/internal/core/config"
	"github.com/colonyops/stale/internal/core/eventbus"
	"github.com/colonyops/stale/internal/core/logging"
)

// Controller ties date resolution, staleness evaluation, and banner
// presentation to the view lifecycle. There is at most one evaluation
// target at a time: the host's active view.
//
// The controller is Idle until Load attaches its subscriptions and Active
// until Unload cancels them. All collaborators are injected; the controller
// holds no ambient state.
type Controller struct {
	views     ViewSystem
	bus       *eventbus.EventBus
	presenter *Presenter

	cfg      config.Freshness
	resolver *Resolver
	subs     []*eventbus.Subscription

	log zerolog.Logger
	now func() time.Time
}

// NewController constructs a controller over the given collaborators. The
// configuration snapshot is compiled immediately; an unusable capture-group
// pattern is rejected here rather than at first evaluation.
func NewController(views ViewSystem, bus *eventbus.EventBus, presenter *Presenter, cfg config.Freshness) (*Controller, error) {
	resolver, err := NewResolver(cfg)
	if err != nil {
		return nil, err
	}

	return &Controller{
		views:     views,
		bus:       bus,
		presenter: presenter,
		cfg:       cfg,
		resolver:  resolver,
		log:       logging.Component("freshness"),
		now:       time.Now,
	}, nil
}

// Load runs an immediate evaluation against the current view and attaches
// the event subscriptions. The controller is Active afterwards.
func (c *Controller) Load(ctx context.Context) {
	c.Evaluate(ctx)
	c.attach(ctx)
}

// Unload cancels all subscriptions, returning the controller to Idle.
func (c *Controller) Unload() {
	c.detach()
}

// ApplySettings swaps in a new configuration snapshot, re-attaches the
// subscriptions (the trigger setting may have changed), and re-runs the
// evaluation against the current view.
func (c *Controller) ApplySettings(ctx context.Context, cfg config.Freshness) error {
	resolver, err := NewResolver(cfg)
	if err != nil {
		return err
	}

	c.detach()
	c.cfg = cfg
	c.resolver = resolver
	c.attach(ctx)
	c.Evaluate(ctx)
	return nil
}

// attach registers the event subscriptions. The modification listener is
// only registered when the trigger includes saves.
func (c *Controller) attach(ctx context.Context) {
	c.subs = append(c.subs, c.bus.SubscribeViewActivated(func(p eventbus.ViewActivatedPayload) {
		c.Evaluate(logging.WithNotePath(ctx, p.Path))
	}))

	if c.cfg.UpdateTrigger == config.TriggerOnOpenOrSave {
		c.subs = append(c.subs, c.bus.SubscribeFileModified(func(p eventbus.FileModifiedPayload) {
			c.onFileModified(logging.WithNotePath(ctx, p.Path), p.Path)
		}))
	}

	c.subs = append(c.subs, c.bus.SubscribeConfigReloaded(func(p eventbus.ConfigReloadedPayload) {
		if p.Config == nil {
			return
		}
		if err := c.ApplySettings(ctx, p.Config.Freshness); err != nil {
			c.log.Error().Err(err).Msg("apply reloaded settings")
		}
	}))
}

func (c *Controller) detach() {
	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.subs = nil
}

// onFileModified re-runs the evaluation when the saved document is the one
// the active view presents. Saves to background documents are ignored; the
// next activation of their view runs its own evaluation.
func (c *Controller) onFileModified(ctx context.Context, path string) {
	v := c.views.ActiveView()
	if v == nil || v.Document().Path() != path {
		return
	}
	c.evaluateView(ctx, v)
}

// Evaluate runs a full resolve → evaluate → present cycle against the
// active view. With no markdown-capable view active the run is a no-op.
// The run is idempotent: unchanged document and configuration yield the
// same banner end-state.
func (c *Controller) Evaluate(ctx context.Context) {
	v := c.views.ActiveView()
	if v == nil {
		return
	}
	c.evaluateView(ctx, v)
}

func (c *Controller) evaluateView(ctx context.Context, v View) {
	resolved, err := c.resolver.Resolve(ctx, v.Document())
	if err != nil {
		// Host I/O failure: the run is simply not completed.
		c.log.Debug().Ctx(ctx).Err(err).Msg("evaluation aborted")
		return
	}

	decision := Evaluate(resolved, c.cfg, c.now())
	c.presenter.Apply(v, decision)

	c.log.Debug().Ctx(ctx).
		Bool("show", decision.Show).
		Str("kind", string(decision.Kind)).
		Msg("evaluation complete")
}
