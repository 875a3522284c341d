package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/oksasatya/cohortly/internal/application/query"
)

type watchEvent struct {
	Query     string    `json:"query"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
	Error     string    `json:"error,omitempty"`
	Data      any       `json:"data"`
}

func watchQuery[T any](ctx context.Context, a *commands, q *query.Query[T]) *query.Subscription {
	return q.Watch(ctx, func(r query.Result[T]) {
		ev := watchEvent{Query: q.Key(), FetchedAt: r.FetchedAt, Data: r.Data}
		if r.Err != nil {
			ev.Error = r.Err.Error()
		}
		if err := a.print(ev); err != nil {
			a.rt.logger.WithError(err).Warn("write watch event")
		}
	})
}

// watch prints every refetch of a query until interrupted. SIGHUP is
// treated as a network reconnect.
func (a *commands) watch() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "print a query every time it refetches",
		ArgsUsage: "<cohorts|communities|joined|members|posts|comments> [id]",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := a.rt.svc
			id := c.Args().Get(1)
			var sub *query.Subscription
			switch name := c.Args().First(); name {
			case "cohorts":
				sub = watchQuery(ctx, a, svc.Cohorts())
			case "communities":
				sub = watchQuery(ctx, a, svc.Communities())
			case "joined":
				sub = watchQuery(ctx, a, svc.JoinedCommunities())
			case "members", "posts", "comments":
				if id == "" {
					return fmt.Errorf("watch %s needs an id", name)
				}
				switch name {
				case "members":
					sub = watchQuery(ctx, a, svc.CohortMembers(id))
				case "posts":
					sub = watchQuery(ctx, a, svc.Posts(id))
				default:
					sub = watchQuery(ctx, a, svc.Comments(id))
				}
			default:
				return fmt.Errorf("cannot watch %q", name)
			}
			defer sub.Stop()

			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hup:
					a.rt.logger.Info("reconnect requested")
					a.rt.queries.NotifyReconnect()
				}
			}
		},
	}
}
