package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/stackquery/internal/filex"
	"github.com/dmitrijs2005/stackquery/internal/questions"
)

// Ask walks the user through the question form, optionally uploads an
// attachment and posts the question.
func (a *App) Ask(ctx context.Context) error {
	st := a.auth.State()
	if !st.Authenticated() {
		printlnFn("Log in to ask a question.")
		return errNotLoggedIn
	}

	var d questions.Draft
	var err error

	if d.Title, err = getSimpleText(a.reader, fmt.Sprintf("Title (%d-%d characters)", questions.MinTitleLen, questions.MaxTitleLen), os.Stdout); err != nil {
		return err
	}
	if d.Content, err = getMultiline(a.reader, fmt.Sprintf("Details (%d-%d characters)", questions.MinContentLen, questions.MaxContentLen), os.Stdout); err != nil {
		return err
	}
	rawTags, err := getSimpleText(a.reader, fmt.Sprintf("Tags, comma separated (1-%d)", questions.MaxTags), os.Stdout)
	if err != nil {
		return err
	}
	if d.Tags, err = questions.ParseTags(rawTags); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := questions.Validate(d); err != nil {
		printlnFn(err.Error())
		return err
	}

	path, err := getSimpleText(a.reader, "Attachment path (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if path != "" {
		id, err := a.uploadAttachment(ctx, path)
		if err != nil {
			a.logger.Warn(ctx, "attachment upload failed", "path", path, "error", err)
			printlnFn("Attachment upload failed. Please try again.")
			return err
		}
		d.AttachmentID = id
	}

	doc, err := a.questions.Ask(ctx, st.User().ID, d)
	if err != nil {
		a.logger.Warn(ctx, "ask failed", "error", err)
		printlnFn("Could not post the question. Please try again.")
		return err
	}

	printlnFn("Question posted:", doc.ID)
	return nil
}

func (a *App) uploadAttachment(ctx context.Context, path string) (string, error) {
	f, size, err := filex.ReadAttachment(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return a.uploader.UploadAttachment(ctx, f, size, mime.TypeByExtension(filepath.Ext(path)))
}
