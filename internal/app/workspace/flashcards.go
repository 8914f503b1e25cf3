package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
)

// CardDraft is one question and answer pair of a new deck.
type CardDraft struct {
	Question string
	Answer   string
}

// FlipCardSetDraft is a deck as submitted by the create form.
type FlipCardSetDraft struct {
	Title    string
	Cards    []CardDraft
	Tags     []string
	IsPublic bool
}

// CreateFlipCardSet creates a flashcard deck. Every card gets its own id.
func (w *Workspace) CreateFlipCardSet(d FlipCardSetDraft) models.FlipCardSet {
	w.mu.Lock()
	defer w.mu.Unlock()

	cards := make([]models.FlipCard, 0, len(d.Cards))
	for _, c := range d.Cards {
		cards = append(cards, models.FlipCard{ID: w.ids.NewID(), Question: c.Question, Answer: c.Answer})
	}

	return w.flashcards.Create(func(id string, now time.Time) models.FlipCardSet {
		return models.FlipCardSet{
			ID:          id,
			Title:       d.Title,
			Cards:       cards,
			CreatedDate: now,
			UserID:      w.ownerID,
			IsPublic:    d.IsPublic,
			Tags:        cloneStrings(d.Tags),
		}
	})
}

// FlipCardSets lists decks matching q, newest first.
func (w *Workspace) FlipCardSets(q collection.Query[models.FlipCardSet]) []models.FlipCardSet {
	w.mu.Lock()
	defer w.mu.Unlock()

	return q.Apply(w.flashcards.Items())
}

// FlipCardSet returns a single deck.
func (w *Workspace) FlipCardSet(id string) (models.FlipCardSet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	set, ok := w.flashcards.Find(id)
	if !ok {
		return models.FlipCardSet{}, apperrors.ErrFlipCardSetNotFound
	}
	return set, nil
}

// DeleteFlipCardSet removes a deck. Missing ids are ignored.
func (w *Workspace) DeleteFlipCardSet(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.flashcards.Delete(id)
}
