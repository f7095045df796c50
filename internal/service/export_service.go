package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	rendererhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/unohub/unohub/internal/model"
	"github.com/unohub/unohub/internal/repo"
)

type ExportPayload struct {
	Pages []model.Page `json:"pages"`
}

type ExportService struct {
	pages *repo.PageRepo
	md    goldmark.Markdown
}

func NewExportService(pages *repo.PageRepo) *ExportService {
	return &ExportService{
		pages: pages,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererhtml.WithUnsafe()),
		),
	}
}

func (s *ExportService) Export(ctx context.Context, userID string) (*ExportPayload, error) {
	pages, err := s.pages.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ExportPayload{Pages: pages}, nil
}

// ExportNotesZip writes the user's pages into a temp zip, one markdown file
// and one rendered HTML file per page, directories mirroring the page tree.
// The caller streams and removes the returned file.
func (s *ExportService) ExportNotesZip(ctx context.Context, userID string) (string, error) {
	pages, err := s.pages.List(ctx, userID)
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp("", "unohub-notes-*.zip")
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	writer := zip.NewWriter(tmp)

	used := make(map[string]int)
	var walk func(nodes []*PageNode, dir string) error
	walk = func(nodes []*PageNode, dir string) error {
		for _, node := range nodes {
			name := sanitizeFileName(node.Title)
			base := path.Join(dir, name)
			used[base]++
			if used[base] > 1 {
				base = fmt.Sprintf("%s-%d", base, used[base])
			}

			entry, err := writer.Create(base + ".md")
			if err != nil {
				return err
			}
			if _, err := entry.Write([]byte(node.Content)); err != nil {
				return err
			}

			var html bytes.Buffer
			if err := s.md.Convert([]byte(node.Content), &html); err != nil {
				return err
			}
			entry, err = writer.Create(base + ".html")
			if err != nil {
				return err
			}
			if _, err := entry.Write(html.Bytes()); err != nil {
				return err
			}

			if len(node.Children) > 0 {
				if err := walk(node.Children, base); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(BuildPageTree(pages), ""); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := writer.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N} _.-]+`)

func sanitizeFileName(title string) string {
	name := unsafeNameChars.ReplaceAllString(strings.TrimSpace(title), "")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "untitled"
	}
	return name
}
