package cli

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	contentmem "github.com/custodia-labs/parallax/internal/adapters/driven/content/memory"
	"github.com/custodia-labs/parallax/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/services"
)

const riceJA = `---
title: 日本の米
---
<!-- s1 -->
# 日本の米

<!-- s2 -->
米は主食です。
`

const riceEN = `---
title: Rice in Japan
---
<!-- s1 -->
# Rice in Japan

<!-- s2 -->
Rice is the staple food.

<!-- s9 -->
An English-only note.
`

// setupTestServices wires real services over an in-memory corpus and
// returns a cleanup function.
func setupTestServices() func() {
	src := contentmem.NewSource()

	var tags domain.Localized[[]string]
	tags.Set(domain.LocaleEN, []string{"food", "culture"})
	src.Put("rice", contentmem.Article{
		Locales: map[domain.Locale]string{domain.LocaleJA: riceJA, domain.LocaleEN: riceEN},
		Meta: &domain.ArticleMeta{
			PublishDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
			Tags:        tags,
			Featured:    true,
		},
	})
	src.Put("k8s", contentmem.Article{
		Locales: map[domain.Locale]string{domain.LocaleEN: "# Kubernetes Basics\n\nPods explained.\n"},
		Meta:    &domain.ArticleMeta{PublishDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
	})

	articles := services.NewArticleService(src, nil, domain.LoaderSettings{})
	search := services.NewSearchService(articles, domain.SearchSettings{Threshold: 0.4, Limit: 20})
	settings := services.NewSettingsService(memory.NewConfigStore())

	SetServices(Services{
		Articles:  articles,
		Compare:   services.NewCompareService(src, nil),
		Search:    search,
		Catalogue: search,
		Settings:  settings,
	})

	return func() {
		SetServices(Services{})
		resetFlags(rootCmd)
	}
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// captureOutput runs fn with the root command writing to a buffer.
func captureOutput(fn func() error) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	err := fn()
	return buf.String(), err
}
