package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sentinels = map[string]error{
	"not found":              ErrNotFound,
	"invalid input":          ErrInvalidInput,
	"unsupported locale":     ErrUnsupportedLocale,
	"partial content":        ErrPartialContent,
	"malformed markup":       ErrMalformedMarkup,
	"search index not built": ErrIndexNotBuilt,
	"article unavailable":    ErrArticleUnavailable,
}

func TestSentinels_MessagesAndIdentity(t *testing.T) {
	for msg, err := range sentinels {
		assert.EqualError(t, err, msg)
		for other, e := range sentinels {
			if other != msg {
				assert.NotErrorIs(t, err, e, "%s must not match %s", msg, other)
			}
		}
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{fmt.Errorf("load rice: %w", ErrNotFound), ErrNotFound},
		{fmt.Errorf("article %s: %w", "k8s", fmt.Errorf("render ja: %w", ErrMalformedMarkup)), ErrMalformedMarkup},
		{fmt.Errorf("locale #9: %w", ErrUnsupportedLocale), ErrUnsupportedLocale},
		{errors.Join(ErrPartialContent, errors.New("zh-CN missing")), ErrPartialContent},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}
}
