package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	bookmodel "smartlib-backend/internal/domains/book/model"
)

// =====================================================
// RULE-BASED RESPONDER
// =====================================================

// recommendationKeywords mark a message as a recommendation request
var recommendationKeywords = []string{
	"recommend", "suggest", "want to read", "looking for",
	"books about", "books on", "books in", "interested in",
}

// topicPatterns extract the subject the user is asking about, e.g.
// "books about science" -> "science"
var topicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`books about (.+?)(?:\.|$|,|\?)`),
	regexp.MustCompile(`books on (.+?)(?:\.|$|,|\?)`),
	regexp.MustCompile(`books in (.+?)(?:\.|$|,|\?)`),
	regexp.MustCompile(`interested in (.+?)(?:\.|$|,|\?)`),
	regexp.MustCompile(`looking for (.+?)(?:\.|$|,|\?)`),
	regexp.MustCompile(`want to read (.+?)(?:\.|$|,|\?)`),
	regexp.MustCompile(`recommend (.+?)(?:\.|$|,|\?)`),
	regexp.MustCompile(`suggest (.+?)(?:\.|$|,|\?)`),
}

// Responder answers library questions from the catalog snapshot alone.
// It backs the assistant whenever the inference API is unconfigured or fails,
// so it must always produce an answer.
type Responder struct{}

func NewResponder() *Responder {
	return &Responder{}
}

// Respond classifies the message and builds an answer from the snapshot
func (r *Responder) Respond(message string, snapshot *bookmodel.LibrarySnapshot) string {
	msg := strings.ToLower(message)

	if containsAny(msg, recommendationKeywords) {
		return r.recommend(msg, snapshot)
	}

	switch {
	case strings.Contains(msg, "how many books") || strings.Contains(msg, "total books"):
		return r.collectionStats(snapshot)
	case strings.Contains(msg, "available") && (strings.Contains(msg, "books") || strings.Contains(msg, "copies")):
		return fmt.Sprintf(
			"There are %d book copies currently available in the library out of %d total copies. This means %d copies are currently issued/checked out.",
			snapshot.AvailableCopies, snapshot.TotalCopies, snapshot.IssuedCopies)
	case strings.Contains(msg, "issued") || strings.Contains(msg, "checked out") || strings.Contains(msg, "borrowed"):
		return fmt.Sprintf(
			"Currently, %d book copies are issued/checked out from the library. There are %d copies still available for checkout out of %d total copies.",
			snapshot.IssuedCopies, snapshot.AvailableCopies, snapshot.TotalCopies)
	case strings.Contains(msg, "all books") || strings.Contains(msg, "list books") || strings.Contains(msg, "books in library"):
		return r.listBooks(snapshot)
	case strings.Contains(msg, "summary") || strings.Contains(msg, "summaries"):
		return r.summaries(snapshot)
	case strings.Contains(msg, "genre") || strings.Contains(msg, "genres"):
		return r.genreBreakdown(snapshot)
	default:
		return r.keywordSearch(msg, snapshot)
	}
}

func (r *Responder) recommend(msg string, snapshot *bookmodel.LibrarySnapshot) string {
	topic := ""
	genreMatch := ""

	for _, genre := range sortedGenres(snapshot.Genres) {
		if strings.Contains(msg, strings.ToLower(genre)) {
			genreMatch = genre
			topic = genre
			break
		}
	}

	if topic == "" {
		for _, pattern := range topicPatterns {
			if m := pattern.FindStringSubmatch(msg); m != nil {
				topic = strings.TrimSpace(m[1])
				break
			}
		}
	}

	if topic == "" && genreMatch == "" {
		return r.genericRecommendation(snapshot)
	}

	searchTerm := topic
	if searchTerm == "" {
		searchTerm = genreMatch
	}

	var matches []bookmodel.BookSummary
	for _, book := range snapshot.Books {
		text := strings.ToLower(fmt.Sprintf("%s %s %s %s", book.Title, book.Author, book.Genre, book.Description))
		if strings.Contains(text, strings.ToLower(searchTerm)) ||
			(genreMatch != "" && strings.EqualFold(book.Genre, genreMatch)) {
			matches = append(matches, book)
		}
	}

	var b strings.Builder
	if len(matches) > 0 {
		fmt.Fprintf(&b, "Based on your interest in '%s', here are some great book recommendations from our library:\n\n", searchTerm)
		for i, book := range matches {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&b, "**%d. %s** by %s\n", i+1, book.Title, book.Author)
			fmt.Fprintf(&b, "   Genre: %s\n", book.Genre)
			fmt.Fprintf(&b, "   Description: %s\n", book.Description)
			fmt.Fprintf(&b, "   Availability: %d of %d copies available\n\n", book.Available, book.Total)
		}
		if len(matches) > 10 {
			fmt.Fprintf(&b, "Plus %d more books matching your interest!\n", len(matches)-10)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "I couldn't find exact matches for '%s', but here are some great books from our library:\n\n", searchTerm)
	for i, book := range snapshot.Books {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "**%d. %s** by %s\n", i+1, book.Title, book.Author)
		fmt.Fprintf(&b, "   Genre: %s\n", book.Genre)
		fmt.Fprintf(&b, "   Description: %s\n\n", book.Description)
	}
	fmt.Fprintf(&b, "\nAvailable genres: %s", genreNamesOrDefault(snapshot.Genres, "Various"))
	return b.String()
}

func (r *Responder) genericRecommendation(snapshot *bookmodel.LibrarySnapshot) string {
	var b strings.Builder
	b.WriteString("Here are some book recommendations from different genres in our library:\n\n")

	shown := make(map[string]bool)
	count := 0
	for _, book := range snapshot.Books {
		if count >= 8 {
			break
		}
		if !shown[book.Genre] || len(shown) < 3 {
			shown[book.Genre] = true
			fmt.Fprintf(&b, "**%s** by %s\n", book.Title, book.Author)
			fmt.Fprintf(&b, "   Genre: %s\n", book.Genre)
			fmt.Fprintf(&b, "   Description: %s\n", book.Description)
			fmt.Fprintf(&b, "   Availability: %d of %d copies available\n\n", book.Available, book.Total)
			count++
		}
	}

	names := sortedGenres(snapshot.Genres)
	if len(names) > 5 {
		names = names[:5]
	}
	suggestion := strings.Join(names, ", ")
	if suggestion == "" {
		suggestion = "Fiction, Science, History"
	}
	fmt.Fprintf(&b, "\nYou can also ask for books in specific genres like: %s", suggestion)
	return b.String()
}

func (r *Responder) collectionStats(snapshot *bookmodel.LibrarySnapshot) string {
	var b strings.Builder
	b.WriteString("The library currently has:\n")
	fmt.Fprintf(&b, "- %d unique book titles\n", snapshot.TotalTitles)
	fmt.Fprintf(&b, "- %d total book copies\n", snapshot.TotalCopies)
	fmt.Fprintf(&b, "- %d copies available for checkout\n", snapshot.AvailableCopies)
	fmt.Fprintf(&b, "- %d copies currently issued/checked out\n", snapshot.IssuedCopies)
	if len(snapshot.Genres) > 0 {
		fmt.Fprintf(&b, "\nThe collection includes books from %d different genres: %s.",
			len(snapshot.Genres), genreListWithCounts(snapshot.Genres))
	}
	return b.String()
}

func (r *Responder) listBooks(snapshot *bookmodel.LibrarySnapshot) string {
	var b strings.Builder
	b.WriteString("Here are the books in our library:\n\n")
	for i, book := range snapshot.Books {
		fmt.Fprintf(&b, "%d. **%s** by %s\n", i+1, book.Title, book.Author)
		fmt.Fprintf(&b, "   Genre: %s\n", book.Genre)
		fmt.Fprintf(&b, "   Description: %s\n", book.Description)
		fmt.Fprintf(&b, "   Availability: %d of %d copies available\n\n", book.Available, book.Total)
	}
	return b.String()
}

func (r *Responder) summaries(snapshot *bookmodel.LibrarySnapshot) string {
	var b strings.Builder
	b.WriteString("Here are summaries of books in our library:\n\n")
	for i, book := range snapshot.Books {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "**%s** by %s: %s\n\n", book.Title, book.Author, book.Description)
	}
	if snapshot.TotalTitles > 10 {
		fmt.Fprintf(&b, "Plus %d more books in the collection.", snapshot.TotalTitles-10)
	}
	return b.String()
}

func (r *Responder) genreBreakdown(snapshot *bookmodel.LibrarySnapshot) string {
	var b strings.Builder
	b.WriteString("The library has books in the following genres:\n")
	for _, genre := range sortedGenres(snapshot.Genres) {
		fmt.Fprintf(&b, "- %s: %d books\n", genre, snapshot.Genres[genre])
	}
	return b.String()
}

func (r *Responder) keywordSearch(msg string, snapshot *bookmodel.LibrarySnapshot) string {
	keywords := strings.Fields(msg)

	var matches []bookmodel.BookSummary
	for _, book := range snapshot.Books {
		text := strings.ToLower(fmt.Sprintf("%s %s %s %s", book.Title, book.Author, book.Genre, book.Description))
		for _, keyword := range keywords {
			if len(keyword) > 3 && strings.Contains(text, keyword) {
				matches = append(matches, book)
				break
			}
		}
	}

	var b strings.Builder
	if len(matches) > 0 {
		fmt.Fprintf(&b, "I found %d book(s) that might interest you:\n\n", len(matches))
		for i, book := range matches {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "**%d. %s** by %s\n", i+1, book.Title, book.Author)
			fmt.Fprintf(&b, "   Genre: %s\n", book.Genre)
			fmt.Fprintf(&b, "   Description: %s\n\n", book.Description)
		}
		return b.String()
	}

	b.WriteString("I'm here to help you with library information! The library has:\n")
	fmt.Fprintf(&b, "- %d unique book titles\n", snapshot.TotalTitles)
	fmt.Fprintf(&b, "- %d copies available for checkout\n", snapshot.AvailableCopies)
	fmt.Fprintf(&b, "- %d copies currently issued\n\n", snapshot.IssuedCopies)
	b.WriteString("You can ask me about:\n")
	b.WriteString("- How many books are in the library (shows available and issued counts)\n")
	b.WriteString("- How many books are available\n")
	b.WriteString("- How many books are issued/checked out\n")
	b.WriteString("- List of all books\n")
	b.WriteString("- Book summaries\n")
	b.WriteString("- Available genres\n")
	b.WriteString("- Book recommendations (e.g., 'recommend books about science', 'suggest fiction books')\n")
	return b.String()
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// sortedGenres returns genre names in a stable order so responses are
// deterministic across calls
func sortedGenres(genres map[string]int) []string {
	names := make([]string, 0, len(genres))
	for name := range genres {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func genreNamesOrDefault(genres map[string]int, fallback string) string {
	names := sortedGenres(genres)
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}

func genreListWithCounts(genres map[string]int) string {
	parts := make([]string, 0, len(genres))
	for _, genre := range sortedGenres(genres) {
		parts = append(parts, fmt.Sprintf("%s (%d)", genre, genres[genre]))
	}
	return strings.Join(parts, ", ")
}
