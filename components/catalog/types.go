// Package catalog holds the travel datasets (bookings, transactions, cities,
// messages, blog posts) and the list views built over them.
package catalog

// BookingStatus is the lifecycle of a hotel booking.
type BookingStatus string

// Booking statuses.
const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// TransactionStatus is the settlement state of a payment.
type TransactionStatus string

// Transaction statuses.
const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionRefunded  TransactionStatus = "refunded"
	TransactionFailed    TransactionStatus = "failed"
)

// PostCategory groups blog posts.
type PostCategory string

// Post categories.
const (
	CategoryDestinations PostCategory = "destinations"
	CategoryTips         PostCategory = "tips"
	CategoryGuides       PostCategory = "guides"
	CategoryNews         PostCategory = "news"
)

// Review is the guest feedback attached to a completed booking.
type Review struct {
	Rating  int    `json:"rating" yaml:"rating"`
	Comment string `json:"comment" yaml:"comment"`
	Date    string `json:"date" yaml:"date"`
}

// Booking is a hotel stay.
type Booking struct {
	ID       string        `json:"id" yaml:"id"`
	Hotel    string        `json:"hotel" yaml:"hotel"`
	City     string        `json:"city" yaml:"city"`
	Country  string        `json:"country" yaml:"country"`
	CheckIn  string        `json:"check_in" yaml:"check_in"`
	CheckOut string        `json:"check_out" yaml:"check_out"`
	Guests   int           `json:"guests" yaml:"guests"`
	Total    string        `json:"total" yaml:"total"`
	Status   BookingStatus `json:"status" yaml:"status"`
	Image    string        `json:"image,omitempty" yaml:"image,omitempty"`
	Review   *Review       `json:"review,omitempty" yaml:"review,omitempty"`
}

// Transaction is a payment line. Amount carries its sign prefix ("+$120.00").
type Transaction struct {
	ID          string            `json:"id" yaml:"id"`
	Description string            `json:"description" yaml:"description"`
	Date        string            `json:"date" yaml:"date"`
	Amount      string            `json:"amount" yaml:"amount"`
	Method      string            `json:"method" yaml:"method"`
	Status      TransactionStatus `json:"status" yaml:"status"`
}

// City is a destination card.
type City struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Country     string  `json:"country" yaml:"country"`
	Region      string  `json:"region" yaml:"region"`
	Description string  `json:"description" yaml:"description"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Hotels      int     `json:"hotels" yaml:"hotels"`
	PriceFrom   float64 `json:"price_from" yaml:"price_from"`
}

// Message is an inbox entry.
type Message struct {
	ID      string `json:"id" yaml:"id"`
	From    string `json:"from" yaml:"from"`
	Subject string `json:"subject" yaml:"subject"`
	Preview string `json:"preview" yaml:"preview"`
	Date    string `json:"date" yaml:"date"`
	Read    bool   `json:"read" yaml:"read"`
}

// Post is a blog article.
type Post struct {
	ID       string       `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Category PostCategory `json:"category" yaml:"category"`
	Excerpt  string       `json:"excerpt" yaml:"excerpt"`
	Content  string       `json:"content" yaml:"content"`
	Date     string       `json:"date" yaml:"date"`
	ReadTime string       `json:"read_time" yaml:"read_time"`
	Tags     []string     `json:"tags" yaml:"tags"`
}
