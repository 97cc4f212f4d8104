package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/stackquery/internal/votes"
)

// parseVotesArgs accepts, in any order, a page number, a vote status and
// "-u <user-id>".
func parseVotesArgs(args []string) (votes.Request, error) {
	req := votes.Request{Page: 1}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-u":
			if i+1 >= len(args) {
				return req, fmt.Errorf("-u needs a user id")
			}
			req.UserID = args[i+1]
			i++
		case arg == string(votes.Upvoted) || arg == string(votes.Downvoted):
			req.VoteStatus = votes.Status(arg)
		default:
			page, err := strconv.Atoi(arg)
			if err != nil || page < 1 {
				return req, fmt.Errorf("unexpected argument %q", arg)
			}
			req.Page = page
		}
	}
	return req, nil
}

// Votes lists a page of votes cast by a user, the current one by default.
func (a *App) Votes(ctx context.Context, args []string) error {
	req, err := parseVotesArgs(args)
	if err != nil {
		printlnFn("Usage: votes [page] [upvoted|downvoted] [-u user-id]:", err.Error())
		return err
	}
	if req.UserID == "" {
		st := a.auth.State()
		if !st.Authenticated() {
			printlnFn("Log in or pass -u user-id.")
			return errNotLoggedIn
		}
		req.UserID = st.User().ID
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	page, err := a.votes.List(ctx, req)
	if err != nil {
		a.logger.Warn(ctx, "votes page failed", "error", err)
		printlnFn("Could not load votes. Please try again.")
		return err
	}

	pages := (page.Total + votes.PageSize - 1) / votes.PageSize
	printlnFn(fmt.Sprintf("Votes: page %d of %d, %d total", req.Page, max(pages, 1), page.Total))
	for _, v := range page.Votes {
		printlnFn(fmt.Sprintf("  %-9s %-8s %s  %q (%s)",
			v.VoteStatus, v.Type, v.CreatedAt.Local().Format(time.DateTime), v.Question.Title, v.Question.ID))
	}
	return nil
}
