package mdcore

import (
	"github.com/brandonbloom/mdcore/internal/render"
	"github.com/brandonbloom/mdcore/internal/validate"
)

const (
	// DefaultMaxInputBytes is the default input size ceiling: 10 MiB.
	DefaultMaxInputBytes = 10 << 20
	// DefaultMaxNestingDepth bounds container nesting before PR1003 fires.
	DefaultMaxNestingDepth = 100
)

// SlugStyle selects the heading-anchor algorithm.
type SlugStyle string

const (
	SlugGithub SlugStyle = "github"
	SlugSimple SlugStyle = "simple"
	SlugNone   SlugStyle = "none"
)

// Options configures every public entry point; zero-value Options are not
// meaningful as-is, use DefaultOptions.
type Options struct {
	GFM                 bool
	Frontmatter         bool
	MDX                 bool
	Math                bool
	Directives          bool
	AllowDangerousHTML  bool
	Sanitize            bool
	Position            bool
	MaxInputBytes       int64
	MaxNestingDepth     int
	Slugger             SlugStyle
	Highlighter         render.Highlighter
	BaseHost            string
	ProviderImportSource string

	// JSExprParser overrides the MDX expression/statement boundary finder.
	// Nil selects the balanced-brace fallback (see internal/mdx/jsexpr).
	JSExprParser jsExprParser
}

// jsExprParser mirrors jsexpr.Parser's method set without importing the
// package here, keeping options.go free of the MDX front-end's internals.
type jsExprParser = interface {
	ParseStatement(src []byte, offset int) (int, error)
	ParseExpression(src []byte, offset int) (int, error)
}

// DefaultOptions returns the safe defaults: GFM and MDX off, frontmatter
// recognition and positions on, sanitization on, dangerous HTML off.
func DefaultOptions() Options {
	return Options{
		Frontmatter:     true,
		Sanitize:        true,
		Position:        true,
		MaxInputBytes:   DefaultMaxInputBytes,
		MaxNestingDepth: DefaultMaxNestingDepth,
		Slugger:         SlugNone,
	}
}

// validate checks Options for internal consistency, the "programmer
// error" category, before any parse/render/session call proceeds.
func (o Options) validate() error {
	return validate.Struct(validate.Options{
		MaxNestingDepth:      o.MaxNestingDepth,
		MaxInputBytes:        o.MaxInputBytes,
		HeadingSlugStyle:     string(o.Slugger),
		ProviderImportSource: o.ProviderImportSource,
	})
}
