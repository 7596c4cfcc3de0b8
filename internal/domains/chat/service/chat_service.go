package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	bookmodel "smartlib-backend/internal/domains/book/model"
	bookservice "smartlib-backend/internal/domains/book/service"
	"smartlib-backend/internal/domains/chat/gateway"
	"smartlib-backend/internal/domains/chat/model"
	"smartlib-backend/internal/domains/chat/repository"
	"smartlib-backend/pkg/logger"
)

const historyLimit = 50

type chatService struct {
	repo      repository.RepositoryInterface
	books     bookservice.ServiceInterface
	completer gateway.Completer // nil when no inference token is configured
	responder *Responder
}

// NewService creates a new assistant service. completer may be nil, in which
// case every answer comes from the rule-based responder.
func NewService(
	repo repository.RepositoryInterface,
	books bookservice.ServiceInterface,
	completer gateway.Completer,
) ServiceInterface {
	return &chatService{
		repo:      repo,
		books:     books,
		completer: completer,
		responder: NewResponder(),
	}
}

func (s *chatService) Chat(ctx context.Context, userID int64, req model.ChatRequest) (*model.ChatResponse, error) {
	snapshot, err := s.books.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	answer := s.answer(ctx, req.Message, snapshot)

	msg := &model.ChatMessage{
		UserID:    userID,
		Message:   req.Message,
		Response:  &answer,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	return &model.ChatResponse{
		Response:  answer,
		MessageID: msg.ID,
	}, nil
}

func (s *chatService) History(ctx context.Context, userID int64) ([]model.HistoryEntry, error) {
	messages, err := s.repo.ListRecentForUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	entries := make([]model.HistoryEntry, 0, len(messages))
	for i := range messages {
		entries = append(entries, messages[i].ToHistoryEntry())
	}
	return entries, nil
}

// answer tries the inference API first and falls back to the rule-based
// responder on any failure, so the endpoint never depends on the external
// service being up
func (s *chatService) answer(ctx context.Context, message string, snapshot *bookmodel.LibrarySnapshot) string {
	if s.completer != nil {
		prompt := buildPrompt(message, snapshot)
		answer, err := s.completer.Complete(ctx, prompt)
		if err == nil {
			return answer
		}
		logger.Warn("Inference API failed, using rule-based responder", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return s.responder.Respond(message, snapshot)
}

// buildPrompt formats the catalog snapshot and user question for a
// Mistral-style instruction-tuned model
func buildPrompt(message string, snapshot *bookmodel.LibrarySnapshot) string {
	var ctxB strings.Builder
	ctxB.WriteString("Library Information:\n")
	fmt.Fprintf(&ctxB, "- Total unique book titles: %d\n", snapshot.TotalTitles)
	fmt.Fprintf(&ctxB, "- Total book copies: %d\n", snapshot.TotalCopies)
	fmt.Fprintf(&ctxB, "- Available copies: %d\n", snapshot.AvailableCopies)
	fmt.Fprintf(&ctxB, "- Issued copies: %d (currently checked out)\n", snapshot.IssuedCopies)

	genreList := genreListWithCounts(snapshot.Genres)
	if genreList == "" {
		genreList = "Various genres"
	}
	fmt.Fprintf(&ctxB, "- Genres available: %s\n", genreList)
	ctxB.WriteString("- Books with details:\n")

	for i, book := range snapshot.Books {
		if i >= 10 {
			break
		}
		description := truncateRunes(book.Description, 100)
		fmt.Fprintf(&ctxB, "%d. %s by %s (%s) - %s...\n", i+1, book.Title, book.Author, book.Genre, description)
	}
	if snapshot.TotalTitles > 10 {
		fmt.Fprintf(&ctxB, "\n... and %d more books in the library.\n", snapshot.TotalTitles-10)
	}

	systemPrompt := fmt.Sprintf(`You are a helpful library assistant for SmartLib. You have access to the following library information:

%s

Your role is to:
1. Help users find books by providing information about available books
2. Answer questions about the library collection, including how many books are available and how many are currently issued/checked out
3. Provide book recommendations based on genres, topics, and descriptions - when users ask for recommendations about a specific domain/topic (e.g., "recommend books about science", "suggest fiction books", "books on history"), search through the library information and recommend relevant books
4. Share summaries and details about books in the library
5. Help with general library-related questions, including availability and issue statistics

IMPORTANT FOR RECOMMENDATIONS:
- When users ask for book recommendations by domain/topic/genre, carefully search through the library information above
- Match books based on genre, title, author, or description content
- Provide specific book titles, authors, genres, and descriptions from the library data
- If multiple books match, list them all with details
- Always use actual books from the library information provided above

Always provide accurate information based on the library data above. If asked about books, genres, or library statistics, use the information provided.`, ctxB.String())

	return fmt.Sprintf("<s>[INST] %s\n\nUser Question: %s\n\nPlease provide a helpful response based on the library information provided. [/INST]", systemPrompt, message)
}

// truncateRunes cuts s to at most n runes, never mid-character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
