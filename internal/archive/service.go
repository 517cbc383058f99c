package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"quotefolio/api/internal/ledger"
)

const quoteFile = "quote.json"

// Revision is one committed state of a quote.
type Revision struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	When    time.Time `json:"when"`
}

// Service keeps one git repository per quote and commits every mutation,
// so any past state of a quote can be recovered.
type Service struct {
	baseDir string
	author  string
	lockMu  sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(baseDir, author string) *Service {
	if author == "" {
		author = "Quotefolio"
	}
	return &Service{
		baseDir: baseDir,
		author:  author,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Commit records the given quote state. The repo is created on first use.
func (s *Service) Commit(q ledger.Quote, message string) (Revision, error) {
	lock := s.quoteLock(q.ID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := s.openOrInit(q.ID)
	if err != nil {
		return Revision{}, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return Revision{}, fmt.Errorf("open worktree: %w", err)
	}

	payload, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return Revision{}, fmt.Errorf("marshal quote: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.repoPath(q.ID), quoteFile), append(payload, '\n'), 0o644); err != nil {
		return Revision{}, fmt.Errorf("write quote file: %w", err)
	}
	if _, err := worktree.Add(quoteFile); err != nil {
		return Revision{}, fmt.Errorf("git add quote file: %w", err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  s.author,
			Email: "archive@quotefolio.local",
			When:  time.Now(),
		},
	})
	if err != nil {
		return Revision{}, fmt.Errorf("commit quote: %w", err)
	}

	if err := s.ensureMain(repo, hash); err != nil {
		return Revision{}, err
	}

	commitObj, err := repo.CommitObject(hash)
	if err != nil {
		return Revision{}, fmt.Errorf("read commit object: %w", err)
	}
	return toRevision(commitObj), nil
}

// History returns revisions newest first, at most limit when limit > 0.
func (s *Service) History(quoteID string, limit int) ([]Revision, error) {
	lock := s.quoteLock(quoteID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(quoteID))
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return []Revision{}, nil
		}
		return nil, fmt.Errorf("open repo: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return []Revision{}, nil
	}

	iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	revisions := make([]Revision, 0, limit)
	count := 0
	err = iter.ForEach(func(commitObj *object.Commit) error {
		revisions = append(revisions, toRevision(commitObj))
		count++
		if limit > 0 && count >= limit {
			return io.EOF
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("iterate log: %w", err)
	}
	return revisions, nil
}

// QuoteAt returns the quote state recorded at the given revision.
func (s *Service) QuoteAt(quoteID, hash string) (ledger.Quote, error) {
	lock := s.quoteLock(quoteID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(quoteID))
	if err != nil {
		return ledger.Quote{}, fmt.Errorf("open repo: %w", err)
	}

	resolved, err := resolveHash(repo, hash)
	if err != nil {
		return ledger.Quote{}, err
	}
	commitObj, err := repo.CommitObject(resolved)
	if err != nil {
		return ledger.Quote{}, fmt.Errorf("read commit %s: %w", hash, err)
	}

	file, err := commitObj.File(quoteFile)
	if err != nil {
		return ledger.Quote{}, fmt.Errorf("load quote file from commit: %w", err)
	}
	reader, err := file.Reader()
	if err != nil {
		return ledger.Quote{}, fmt.Errorf("open quote reader: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return ledger.Quote{}, fmt.Errorf("read quote bytes: %w", err)
	}

	var q ledger.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return ledger.Quote{}, fmt.Errorf("decode archived quote: %w", err)
	}
	return q, nil
}

func (s *Service) openOrInit(quoteID string) (*git.Repository, error) {
	path := s.repoPath(quoteID)
	repo, err := git.PlainOpen(path)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create repo dir: %w", err)
	}
	repo, err = git.PlainInit(path, false)
	if err != nil {
		return nil, fmt.Errorf("init repo: %w", err)
	}
	return repo, nil
}

func (s *Service) ensureMain(repo *git.Repository, hash plumbing.Hash) error {
	mainRef := plumbing.NewBranchReferenceName("main")
	if err := repo.Storer.SetReference(plumbing.NewHashReference(mainRef, hash)); err != nil {
		return fmt.Errorf("set main branch ref: %w", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, mainRef)); err != nil {
		return fmt.Errorf("set HEAD to main: %w", err)
	}
	return nil
}

func (s *Service) repoPath(quoteID string) string {
	return filepath.Join(s.baseDir, quoteID)
}

func (s *Service) quoteLock(quoteID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[quoteID]
	if ok {
		return lock
	}
	lock = &sync.Mutex{}
	s.locks[quoteID] = lock
	return lock
}

func toRevision(commitObj *object.Commit) Revision {
	return Revision{
		Hash:    commitObj.Hash.String()[:7],
		Message: commitObj.Message,
		Author:  commitObj.Author.Name,
		When:    commitObj.Author.When,
	}
}

func resolveHash(repo *git.Repository, hash string) (plumbing.Hash, error) {
	if len(hash) == 40 {
		return plumbing.NewHash(hash), nil
	}
	resolved, err := repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve hash %s: %w", hash, err)
	}
	return *resolved, nil
}
