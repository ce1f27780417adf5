package views

import (
	"bytes"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

var (
	md       = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitize = bluemonday.UGCPolicy()
	title    = cases.Title(language.English)

	filtersOnce sync.Once
	filtersErr  error
)

var priorityLabels = map[string]string{
	models.PriorityLow:    "Low",
	models.PriorityMedium: "Medium",
	models.PriorityHigh:   "High",
}

var actionLabels = map[string]string{
	models.ActionCreate:  "Create",
	models.ActionRead:    "Read",
	models.ActionUpdate:  "Update",
	models.ActionDelete:  "Delete",
	models.ActionSpecial: "Special",
}

// Markdown renders user text (ticket descriptions, comments) to sanitised HTML.
func Markdown(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return sanitize.Sanitize(src)
	}
	return string(sanitize.SanitizeBytes(buf.Bytes()))
}

func PriorityLabel(p string) string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return Humanize(p)
}

// Humanize turns snake_case into Title Case.
func Humanize(s string) string {
	return title.String(strings.ReplaceAll(s, "_", " "))
}

// TimeAgo renders a timestamp relative to now ("3 hours ago").
func TimeAgo(v any) string {
	t, ok := asTime(v)
	if !ok {
		return ""
	}
	return humanize.Time(t)
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		if p, err := time.Parse(time.RFC3339, t); err == nil {
			return p, true
		}
	}
	return time.Time{}, false
}

func registerFilters() error {
	filtersOnce.Do(func() {
		reg := map[string]pongo2.FilterFunction{
			"markdown": func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsSafeValue(Markdown(in.String())), nil
			},
			"timeago": func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(TimeAgo(in.Interface())), nil
			},
			"datetime": func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				t, ok := asTime(in.Interface())
				if !ok {
					return pongo2.AsValue("-"), nil
				}
				return pongo2.AsValue(t.Local().Format("2006-01-02 15:04")), nil
			},
			"priority_label": func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(PriorityLabel(in.String())), nil
			},
			"action_label": func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				if l, ok := actionLabels[in.String()]; ok {
					return pongo2.AsValue(l), nil
				}
				return pongo2.AsValue(Humanize(in.String())), nil
			},
			"humanize": func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(Humanize(in.String())), nil
			},
			"comma": func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(humanize.Comma(int64(in.Float()))), nil
			},
		}
		for name, fn := range reg {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				filtersErr = err
				return
			}
		}
	})
	return filtersErr
}
