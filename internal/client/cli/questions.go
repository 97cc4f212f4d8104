package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/stackquery/internal/questions"
)

func parseQuestionsArgs(args []string) (int, error) {
	switch len(args) {
	case 0:
		return 1, nil
	case 1:
		page, err := strconv.Atoi(args[0])
		if err != nil || page < 1 {
			return 0, fmt.Errorf("unexpected argument %q", args[0])
		}
		return page, nil
	default:
		return 0, fmt.Errorf("too many arguments")
	}
}

// Questions lists a page of the newest questions. No login is needed.
func (a *App) Questions(ctx context.Context, args []string) error {
	page, err := parseQuestionsArgs(args)
	if err != nil {
		printlnFn("Usage: questions [page]:", err.Error())
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.browser.Browse(ctx, page)
	if err != nil {
		a.logger.Warn(ctx, "questions page failed", "error", err)
		printlnFn("Could not load questions. Please try again.")
		return err
	}

	pages := (res.Total + questions.PageSize - 1) / questions.PageSize
	printlnFn(fmt.Sprintf("Questions: page %d of %d, %d total", page, max(pages, 1), res.Total))
	for _, q := range res.Questions {
		printlnFn(fmt.Sprintf("  %3d votes %3d answers  %s (%s)", q.TotalVotes, q.TotalAnswers, q.Title, q.ID))
		printlnFn(fmt.Sprintf("      %s  asked by %s on %s",
			formatTags(q.Tags), q.Author(), q.CreatedAt.Local().Format(time.DateTime)))
	}
	return nil
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}
