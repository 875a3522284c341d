package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/oksasatya/cohortly/internal/application"
	"github.com/oksasatya/cohortly/internal/application/query"
	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

func (a *commands) print(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.rt.out, string(b))
	return err
}

func printQuery[T any](ctx context.Context, a *commands, q *query.Query[T]) error {
	v, err := q.Get(ctx)
	if err != nil {
		return err
	}
	return a.print(v)
}

func arg(c *cli.Context, name string) (string, error) {
	v := c.Args().First()
	if v == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return v, nil
}

// withArg adapts a service query that needs one positional id.
func withArg[T any](a *commands, name string, build func(s *application.Service, id string) *query.Query[T]) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := arg(c, name)
		if err != nil {
			return err
		}
		return printQuery(c.Context, a, build(a.rt.svc, id))
	}
}

func (a *commands) token() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "manage the stored access token",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "store a token",
				ArgsUsage: "<token>",
				Action: func(c *cli.Context) error {
					tok, err := arg(c, "token")
					if err != nil {
						return err
					}
					return a.rt.tokens.Set(c.Context, repository.AuthTokenKey, strings.TrimSpace(tok))
				},
			},
			{
				Name:  "show",
				Usage: "print the claims of the stored token (not verified)",
				Action: func(c *cli.Context) error {
					tok, err := a.rt.tokens.Get(c.Context, repository.AuthTokenKey)
					if errors.Is(err, repository.ErrNotFound) {
						return errors.New("no token stored")
					}
					if err != nil {
						return err
					}
					claims, err := helpers.PeekClaims(tok)
					if err != nil {
						return fmt.Errorf("stored token is not a JWT: %w", err)
					}
					out := map[string]any{"user_id": claims.UserID, "role": claims.Role}
					if claims.ExpiresAt != nil {
						out["expires_at"] = claims.ExpiresAt.Time.Format(time.RFC3339)
						out["expired"] = claims.ExpiresAt.Before(time.Now())
					}
					return a.print(out)
				},
			},
			{
				Name:  "clear",
				Usage: "remove the stored token",
				Action: func(c *cli.Context) error {
					return a.rt.tokens.Delete(c.Context, repository.AuthTokenKey)
				},
			},
		},
	}
}

func cohortFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "community", Usage: "community id"},
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "start", Usage: "start date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "end", Usage: "end date (YYYY-MM-DD)"},
		&cli.IntFlag{Name: "max-members"},
		&cli.StringFlag{Name: "url"},
		&cli.StringFlag{Name: "goal"},
		&cli.StringFlag{Name: "structure", Usage: "community structure"},
	}
}

func cohortFromFlags(c *cli.Context) entity.Cohort {
	return entity.Cohort{
		CommunityID:        c.String("community"),
		Name:               c.String("name"),
		Description:        c.String("description"),
		StartDate:          c.String("start"),
		EndDate:            c.String("end"),
		MaxMembers:         c.Int("max-members"),
		URL:                c.String("url"),
		Goal:               c.String("goal"),
		CommunityStructure: c.String("structure"),
	}
}

func (a *commands) cohorts() *cli.Command {
	return &cli.Command{
		Name:  "cohorts",
		Usage: "cohorts you belong to or convene",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					return printQuery(c.Context, a, a.rt.svc.Cohorts())
				},
			},
			{Name: "get", ArgsUsage: "<cohortID>", Action: withArg(a, "cohortID", (*application.Service).Cohort)},
			{Name: "members", ArgsUsage: "<cohortID>", Action: withArg(a, "cohortID", (*application.Service).CohortMembers)},
			{Name: "posts", ArgsUsage: "<cohortID>", Action: withArg(a, "cohortID", (*application.Service).Posts)},
			{
				Name:  "create",
				Flags: cohortFlags(),
				Action: func(c *cli.Context) error {
					out, err := a.rt.svc.CreateCohort().Execute(c.Context, cohortFromFlags(c))
					if err != nil {
						return err
					}
					return a.print(out)
				},
			},
			{
				Name:      "update",
				ArgsUsage: "<cohortID>",
				Flags:     cohortFlags(),
				Action: func(c *cli.Context) error {
					id, err := arg(c, "cohortID")
					if err != nil {
						return err
					}
					out, err := a.rt.svc.UpdateCohort().Execute(c.Context, application.UpdateCohortInput{CohortID: id, Cohort: cohortFromFlags(c)})
					if err != nil {
						return err
					}
					return a.print(out)
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<cohortID>",
				Action: func(c *cli.Context) error {
					id, err := arg(c, "cohortID")
					if err != nil {
						return err
					}
					if _, err := a.rt.svc.DeleteCohort().Execute(c.Context, id); err != nil {
						return err
					}
					return a.print(map[string]any{"deleted": id})
				},
			},
			{
				Name:      "join",
				ArgsUsage: "<referral>",
				Action: func(c *cli.Context) error {
					out, err := a.rt.svc.JoinCohort().Execute(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return a.print(out)
				},
			},
		},
	}
}

func (a *commands) communities() *cli.Command {
	return &cli.Command{
		Name:  "communities",
		Usage: "communities you convene or joined",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					return printQuery(c.Context, a, a.rt.svc.Communities())
				},
			},
			{
				Name: "joined",
				Action: func(c *cli.Context) error {
					return printQuery(c.Context, a, a.rt.svc.JoinedCommunities())
				},
			},
			{Name: "cohorts", ArgsUsage: "<communityID>", Action: withArg(a, "communityID", (*application.Service).CommunityCohorts)},
			{Name: "programmes", ArgsUsage: "<communityID>", Action: withArg(a, "communityID", (*application.Service).Programmes)},
		},
	}
}

func (a *commands) programmes() *cli.Command {
	return &cli.Command{
		Name: "programmes",
		Subcommands: []*cli.Command{
			{Name: "modules", ArgsUsage: "<programmeID>", Action: withArg(a, "programmeID", (*application.Service).Modules)},
		},
	}
}

func (a *commands) modules() *cli.Command {
	return &cli.Command{
		Name: "modules",
		Subcommands: []*cli.Command{
			{Name: "lessons", ArgsUsage: "<moduleID>", Action: withArg(a, "moduleID", (*application.Service).Lessons)},
		},
	}
}

func (a *commands) posts() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "cohort posts and their comments",
		Subcommands: []*cli.Command{
			{Name: "comments", ArgsUsage: "<postID>", Action: withArg(a, "postID", (*application.Service).Comments)},
			{
				Name:      "create",
				ArgsUsage: "<cohortID>",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "text", Required: true}},
				Action: func(c *cli.Context) error {
					id, err := arg(c, "cohortID")
					if err != nil {
						return err
					}
					out, err := a.rt.svc.CreatePost().Execute(c.Context, application.CreatePostInput{CohortID: id, Text: c.String("text")})
					if err != nil {
						return err
					}
					return a.print(out)
				},
			},
			{
				Name:      "comment",
				ArgsUsage: "<postID>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Required: true},
					&cli.StringFlag{Name: "media", Usage: "media URL"},
				},
				Action: func(c *cli.Context) error {
					id, err := arg(c, "postID")
					if err != nil {
						return err
					}
					out, err := a.rt.svc.CreateComment().Execute(c.Context, application.CreateCommentInput{
						PostID:               id,
						CreateCommentRequest: entity.CreateCommentRequest{Text: c.String("text"), Media: c.String("media")},
					})
					if err != nil {
						return err
					}
					return a.print(out)
				},
			},
		},
	}
}

func (a *commands) profile() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "your profile",
		Subcommands: []*cli.Command{
			{
				Name: "show",
				Action: func(c *cli.Context) error {
					return printQuery(c.Context, a, a.rt.svc.Profile())
				},
			},
			{
				Name: "update",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
					&cli.StringFlag{Name: "username"},
					&cli.StringFlag{Name: "password"},
					&cli.StringFlag{Name: "location"},
					&cli.StringFlag{Name: "socials"},
					&cli.StringFlag{Name: "bio"},
					&cli.PathFlag{Name: "image", Usage: "profile image file"},
				},
				Action: func(c *cli.Context) error {
					form := entity.ProfileFormData{
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Username:  c.String("username"),
						Password:  c.String("password"),
						Location:  c.String("location"),
						Socials:   c.String("socials"),
						Bio:       c.String("bio"),
					}
					if img := c.Path("image"); img != "" {
						form.ProfileImage = &entity.ProfileImage{URI: "file://" + img}
					}
					out, err := a.rt.svc.UpdateProfile().Execute(c.Context, form)
					if err != nil {
						return err
					}
					return a.print(out)
				},
			},
		},
	}
}
