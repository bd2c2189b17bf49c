package mdcore

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/brandonbloom/mdcore/internal/diag"
	"github.com/brandonbloom/mdcore/internal/mdx/jsexpr"
	"github.com/brandonbloom/mdcore/internal/session"
	"github.com/brandonbloom/mdcore/internal/tree"
)

// SessionEdit is edit_session's per-edit input, in pre-edit byte offsets.
type SessionEdit struct {
	Start, End int
	Text       string
}

// SessionDelta reports what an EditSession call changed.
type SessionDelta struct {
	Removed     int
	Inserted    int
	Reused      int
	FullReparse bool
}

// Sessions is a registry of live sessions. The zero value is ready to
// use; callers typically hold one registry per host process (e.g.
// cmd/mdcore-edit holds exactly one).
type Sessions struct {
	mu sync.Mutex
	m  map[string]*session.Session
}

// CreateSession parses source and registers a new session. If id is empty,
// a UUID is generated and returned.
func (s *Sessions) CreateSession(id string, source []byte, opts Options) (string, []diag.Diagnostic, error) {
	if err := opts.validate(); err != nil {
		return "", nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}
	parser := opts.JSExprParser
	if parser == nil {
		parser = jsexpr.BalancedParser{}
	}
	sess, diags := session.New(id, normalize(source), session.Options{
		GFM:             opts.GFM,
		MDX:             opts.MDX,
		Frontmatter:     opts.Frontmatter,
		Math:            opts.Math,
		Directives:      opts.Directives,
		MaxNestingDepth: opts.MaxNestingDepth,
		JSExprParser:    parser,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = map[string]*session.Session{}
	}
	s.m[id] = sess
	return id, diags.Items(), nil
}

// EditSession applies edits to the named session.
func (s *Sessions) EditSession(id string, edits []SessionEdit) (SessionDelta, error) {
	sess, err := s.get(id)
	if err != nil {
		return SessionDelta{}, err
	}
	internalEdits := make([]session.Edit, len(edits))
	for i, e := range edits {
		internalEdits[i] = session.Edit{Start: e.Start, End: e.End, Text: e.Text}
	}
	delta, err := sess.Edit(internalEdits)
	if err != nil {
		return SessionDelta{}, err
	}
	return SessionDelta{Removed: delta.Removed, Inserted: delta.Inserted, Reused: delta.Reused, FullReparse: delta.FullReparse}, nil
}

// Snapshot returns the named session's current tree.
func (s *Sessions) Snapshot(id string) (*tree.Node, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

// DestroySession removes a session from the registry.
func (s *Sessions) DestroySession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return fmt.Errorf("mdcore: %w: session %q", errSessionNotFound, id)
	}
	delete(s.m, id)
	return nil
}

var errSessionNotFound = fmt.Errorf(diag.CodeSessionNotFound + ": session not found")

func (s *Sessions) get(id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil, fmt.Errorf("mdcore: %w: session %q", errSessionNotFound, id)
	}
	return sess, nil
}
