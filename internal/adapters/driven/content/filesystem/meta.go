package filesystem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// metaFile is the on-disk shape of meta.json.
type metaFile struct {
	AuthorID     string          `json:"authorId"`
	Author       *authorFile     `json:"author"`
	Tags         json.RawMessage `json:"tags"`
	PublishDate  string          `json:"publishDate"`
	HeroImage    string          `json:"heroImage"`
	Featured     bool            `json:"featured"`
	RelatedPosts []string        `json:"relatedPosts"`
}

// authorFile accepts names and designations either as a plain string or
// as an object keyed by locale code.
type authorFile struct {
	ID          string            `json:"id"`
	Name        localizedText     `json:"name"`
	Designation localizedText     `json:"designation"`
	Bio         localizedText     `json:"bio"`
	Image       string            `json:"image"`
	Socials     map[string]string `json:"socials"`
}

type localizedText domain.Localized[string]

func (t *localizedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = localizedText(domain.Uniform(s))
		return nil
	}
	var m domain.Localized[string]
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = localizedText(m)
	return nil
}

// publishLayouts are tried in order.
var publishLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func decodeMeta(data []byte) (*domain.ArticleMeta, error) {
	var raw metaFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	meta := &domain.ArticleMeta{
		HeroImage: strings.TrimSpace(raw.HeroImage),
		Featured:  raw.Featured,
		AuthorID:  strings.TrimSpace(raw.AuthorID),
	}

	if raw.PublishDate != "" {
		t, err := parsePublishDate(raw.PublishDate)
		if err != nil {
			return nil, err
		}
		meta.PublishDate = t
	}

	tags, err := decodeTags(raw.Tags)
	if err != nil {
		return nil, err
	}
	meta.Tags = tags

	if raw.Author != nil {
		author := raw.Author.toDomain()
		meta.EmbeddedAuthor = &author
	}

	for _, id := range raw.RelatedPosts {
		rid := domain.ArticleID(strings.TrimSpace(id))
		if rid.Validate() == nil {
			meta.RelatedIDs = append(meta.RelatedIDs, rid)
		}
	}
	return meta, nil
}

func parsePublishDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range publishLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("publishDate %q: unrecognised format", s)
}

// decodeTags accepts either {"ja": [...], "en": [...]} or a flat list that
// applies to every locale.
func decodeTags(data json.RawMessage) (domain.Localized[[]string], error) {
	var tags domain.Localized[[]string]
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return tags, nil
	}
	if data[0] == '[' {
		var flat []string
		if err := json.Unmarshal(data, &flat); err != nil {
			return tags, fmt.Errorf("tags: %w", err)
		}
		return domain.Uniform(cleanTags(flat)), nil
	}
	if err := tags.UnmarshalJSON(data); err != nil {
		return tags, fmt.Errorf("tags: %w", err)
	}
	for i := range tags {
		tags[i] = cleanTags(tags[i])
	}
	return tags, nil
}

func cleanTags(in []string) []string {
	var out []string
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func decodeAuthor(data []byte) (*domain.Author, error) {
	var raw authorFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	author := raw.toDomain()
	return &author, nil
}

func (a authorFile) toDomain() domain.Author {
	return domain.Author{
		ID:          strings.TrimSpace(a.ID),
		Name:        domain.Localized[string](a.Name),
		Designation: domain.Localized[string](a.Designation),
		Bio:         domain.Localized[string](a.Bio),
		Image:       strings.TrimSpace(a.Image),
		Socials:     a.Socials,
	}
}

func decodeCaptions(data []byte) (map[string]domain.Localized[string], error) {
	var captions map[string]domain.Localized[string]
	if err := json.Unmarshal(data, &captions); err != nil {
		return nil, err
	}
	if captions == nil {
		captions = map[string]domain.Localized[string]{}
	}
	return captions, nil
}
