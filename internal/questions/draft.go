// Package questions validates and stores new questions.
package questions

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLen   = 10
	MaxTitleLen   = 150
	MinContentLen = 30
	MaxContentLen = 5000
	MinTagLen     = 2
	MaxTags       = 5
)

var (
	ErrTitleLength   = fmt.Errorf("title must be %d to %d characters", MinTitleLen, MaxTitleLen)
	ErrContentLength = fmt.Errorf("content must be %d to %d characters", MinContentLen, MaxContentLen)
	ErrNoTags        = errors.New("at least one tag is required")
	ErrTooManyTags   = fmt.Errorf("at most %d tags are allowed", MaxTags)
	ErrTagTooShort   = fmt.Errorf("tags must be at least %d characters", MinTagLen)
)

// Draft is a question being written.
type Draft struct {
	Title        string
	Content      string
	Tags         []string
	AttachmentID string
}

// AddTag normalizes tag and appends it unless it is already present.
// It reports whether the tag was added.
func (d *Draft) AddTag(tag string) (bool, error) {
	tag = normalizeTag(tag)
	if utf8.RuneCountInString(tag) < MinTagLen {
		return false, ErrTagTooShort
	}
	for _, t := range d.Tags {
		if t == tag {
			return false, nil
		}
	}
	if len(d.Tags) >= MaxTags {
		return false, ErrTooManyTags
	}
	d.Tags = append(d.Tags, tag)
	return true, nil
}

// ParseTags splits a comma or space separated list into a normalized,
// de-duplicated tag list.
func ParseTags(s string) ([]string, error) {
	var d Draft
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	for _, f := range fields {
		if _, err := d.AddTag(f); err != nil {
			return nil, fmt.Errorf("tag %q: %w", f, err)
		}
	}
	return d.Tags, nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Validate checks the draft and returns every violation joined together.
func Validate(d Draft) error {
	var errs []error

	if n := utf8.RuneCountInString(strings.TrimSpace(d.Title)); n < MinTitleLen || n > MaxTitleLen {
		errs = append(errs, ErrTitleLength)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(d.Content)); n < MinContentLen || n > MaxContentLen {
		errs = append(errs, ErrContentLength)
	}

	switch {
	case len(d.Tags) == 0:
		errs = append(errs, ErrNoTags)
	case len(d.Tags) > MaxTags:
		errs = append(errs, ErrTooManyTags)
	}
	for _, t := range d.Tags {
		if utf8.RuneCountInString(normalizeTag(t)) < MinTagLen {
			errs = append(errs, ErrTagTooShort)
			break
		}
	}

	return errors.Join(errs...)
}

// Fields renders the draft as a questions collection document.
func (d Draft) Fields(authorID string) map[string]any {
	tags := make([]any, len(d.Tags))
	for i, t := range d.Tags {
		tags[i] = normalizeTag(t)
	}
	f := map[string]any{
		"title":    strings.TrimSpace(d.Title),
		"content":  strings.TrimSpace(d.Content),
		"tags":     tags,
		"authorId": authorID,
	}
	if d.AttachmentID != "" {
		f["attachmentId"] = d.AttachmentID
	}
	return f
}
