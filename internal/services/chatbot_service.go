package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ProductCounter reports the size of the catalog.
type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

type keywordReply struct {
	keyword string
	reply   string
}

// Order matters: the first keyword contained in the message wins.
var chatbotReplies = []keywordReply{
	{"hello", "Hello! Welcome to RapidReads! How can I help you find your next great book today?"},
	{"hi", "Hi there! I'm here to help you with anything related to our bookstore. What can I do for you?"},
	{"books", "We have an amazing collection of books across many genres including Fantasy, Fiction, Classics, Self-help, and more! What type of book interests you?"},
	{"genres", "Our books cover many genres: Fantasy, Historical, Fiction, Self-help, Philosophical, Adventure, Classic, Commentary, Literature, and Political fiction."},
	{"price", "Our books are competitively priced, ranging from 34 AED to 95 AED. You can sort by price on our products page to find books within your budget!"},
	{"shipping", "We offer fast delivery across the UAE, usually within 2-3 business days. Orders are processed quickly and shipped with care."},
	{"delivery", "We provide reliable delivery services throughout the UAE. Most orders arrive within 2-3 business days."},
	{"help", "I can help you with: finding books, information about genres, pricing details, shipping info, account questions, and general bookstore inquiries!"},
	{"account", "For account-related questions, you can register or login on our site. If you have specific account issues, please contact our support team."},
	{"authors", "We feature books from renowned authors like J.K. Rowling, Harper Lee, James Clear, Paulo Coelho, and many more classic and contemporary writers."},
	{"bestseller", "Some of our popular books include Harry Potter series, To Kill a Mockingbird, Atomic Habits, and The Alchemist. Check out our full collection!"},
	{"recommend", "I'd be happy to recommend books! What genre do you enjoy? Are you looking for fiction, self-help, classics, or something else?"},
	{"search", "You can search for books by title, author, or genre using the search bar on our products page. Try searching for your favorite author or genre!"},
	{"inventory", "We keep our inventory updated in real-time. If a book shows as available on the product page, it's ready to ship!"},
	{"contact", "You can reach our support team at support@rapidread.com or call +971-555-123456 for any assistance."},
	{"thanks", "You're very welcome! I'm glad I could help. Happy reading, and enjoy your books from RapidReads!"},
	{"bye", "Goodbye! Thanks for visiting RapidReads. Come back anytime for more great books. Happy reading!"},
}

const (
	chatbotDefaultReply = "I'm here to help! You can ask me about our books, prices, shipping, or anything else about RapidReads."
	chatbotCountFailed  = "We have a great selection of books available! Browse our products page to see our full collection."
	chatbotCountReply   = "We currently have %d books available in our collection across various genres!"

	// ChatbotFailureReply is sent with a 500 when the responder itself fails.
	ChatbotFailureReply = "I'm sorry, I'm having some technical difficulties right now. Please try again in a moment!"
)

// ChatbotService answers customer messages from a fixed keyword table.
type ChatbotService struct {
	counter ProductCounter
	log     *zap.Logger
}

// NewChatbotService creates a new ChatbotService.
func NewChatbotService(counter ProductCounter, log *zap.Logger) *ChatbotService {
	return &ChatbotService{counter: counter, log: log}
}

// Respond returns the canned reply for message. Questions about how many
// books there are get the live catalog size instead.
func (s *ChatbotService) Respond(ctx context.Context, message string) string {
	lower := strings.ToLower(message)

	reply := chatbotDefaultReply
	for _, kr := range chatbotReplies {
		if strings.Contains(lower, kr.keyword) {
			reply = kr.reply
			break
		}
	}

	if strings.Contains(lower, "how many") || strings.Contains(lower, "count") {
		n, err := s.counter.Count(ctx)
		if err != nil {
			s.log.Warn("chatbot failed to count products", zap.Error(err))
			return chatbotCountFailed
		}
		return fmt.Sprintf(chatbotCountReply, n)
	}
	return reply
}
