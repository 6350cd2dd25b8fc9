package salespage

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pagespark/pagespark/internal/models"
)

// Page is one generated sales page on disk.
type Page struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	ProductID string `json:"product_id"`
	CreatedAt string `json:"created_at"`
}

// Generator renders records into standalone HTML files under a single
// output directory.
type Generator struct {
	dir    string
	tmpl   *template.Template
	logger *slog.Logger
}

func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create pages directory: %w", err)
	}

	tmpl, err := template.New("salespage").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Generator{
		dir:    dir,
		tmpl:   tmpl,
		logger: slog.Default().With("component", "salespage"),
	}, nil
}

// Generate renders the record with fresh sales copy and writes the page.
func (g *Generator) Generate(record models.ProductRecord) (Page, error) {
	salesCopy := GenerateCopy(record)

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, struct {
		Product models.ProductRecord
		Copy    Copy
	}{record, salesCopy}); err != nil {
		return Page{}, fmt.Errorf("failed to render page: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(g.dir, fmt.Sprintf("page_%s.html", id))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Page{}, fmt.Errorf("failed to write page: %w", err)
	}

	g.logger.Info("generated sales page", "id", id, "product_id", record.ID, "path", path)

	return Page{
		ID:        id,
		Path:      path,
		ProductID: record.ID,
		CreatedAt: models.Timestamp(time.Now()),
	}, nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Product.Title}}</title>
<style>
body { font-family: -apple-system, Arial, sans-serif; margin: 0; background: #f7f7f9; color: #222; }
.hero { background: #1a1a2e; color: #fff; padding: 48px 24px; text-align: center; }
.hero h1 { margin: 0 0 12px; font-size: 2rem; }
.container { max-width: 860px; margin: 0 auto; padding: 24px; }
.product { display: flex; gap: 24px; background: #fff; border-radius: 8px; padding: 24px; flex-wrap: wrap; }
.product img { max-width: 360px; width: 100%; border-radius: 6px; }
.price { font-size: 1.8rem; font-weight: 700; color: #e94560; }
.original { text-decoration: line-through; color: #888; font-size: 1rem; margin-left: 8px; }
.benefits { list-style: none; padding: 0; }
.benefits li { padding: 6px 0; }
.benefits li::before { content: "\2713 "; color: #2ecc71; font-weight: 700; }
.cta { display: inline-block; background: #e94560; color: #fff; padding: 16px 40px; border-radius: 6px; font-size: 1.2rem; text-decoration: none; margin: 16px 0; }
.urgency { color: #e94560; font-weight: 600; }
.guarantee { color: #555; }
.reviews { background: #fff; border-radius: 8px; padding: 24px; margin-top: 24px; }
.review { border-top: 1px solid #eee; padding: 12px 0; }
</style>
</head>
<body>
<div class="hero">
	<h1>{{.Copy.Headline}}</h1>
	<p class="urgency">{{.Copy.UrgencyText}}</p>
</div>
<div class="container">
	<div class="product">
		{{with index .Product.Images 0}}<img src="{{.URL}}" alt="{{.Alt}}">{{end}}
		<div>
			<h2>{{.Product.Title}}</h2>
			{{if gt .Product.Price.Current 0.0}}
			<p class="price">{{printf "%.2f" .Product.Price.Current}} {{.Product.Price.Currency}}
				{{if gt .Product.Price.DiscountPercentage 0.0}}<span class="original">{{printf "%.2f" .Product.Price.Original}}</span>{{end}}
			</p>
			{{else}}
			<p class="price">Contact us for pricing</p>
			{{end}}
			<p>{{.Copy.Description}}</p>
			<ul class="benefits">
				{{range .Copy.Benefits}}<li>{{.}}</li>{{end}}
			</ul>
			<a class="cta" href="{{.Product.Source.URL}}">{{.Copy.CallToAction}}</a>
			<p class="guarantee">{{.Copy.GuaranteeText}}</p>
		</div>
	</div>
	{{if .Product.Reviews.RecentReviews}}
	<div class="reviews">
		<h3>What buyers say ({{.Product.Reviews.AverageRating}} / 5, {{.Product.Reviews.TotalReviews}} reviews)</h3>
		{{range .Product.Reviews.RecentReviews}}
		<div class="review">
			<strong>{{.Author}}</strong> &mdash; {{.Rating}}/5
			<p>{{.Comment}}</p>
		</div>
		{{end}}
	</div>
	{{end}}
</div>
</body>
</html>
`
