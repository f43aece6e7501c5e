package models

import "time"

// Entities mirror the learning platform backend. The console never owns
// them; every record is fetched fresh and posted back as-is.

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Stats struct {
	TotalUsers            int `json:"total_users"`
	TotalModules          int `json:"total_modules"`
	TotalLessons          int `json:"total_lessons"`
	TotalPacks            int `json:"total_packs"`
	TotalWords            int `json:"total_words"`
	TotalGrammarQuestions int `json:"total_grammar_questions"`
	TotalTranslations     int `json:"total_translations"`
	ActiveUsersLast7Days  int `json:"active_users_last_7_days"`
}

type User struct {
	ID          int       `json:"id"`
	TelegramID  int64     `json:"telegram_id"`
	PhoneNumber string    `json:"phone_number"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Module struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	Lessons   []Lesson  `json:"lessons,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lesson struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ModuleID    int       `json:"module_id"`
	Order       int       `json:"order"`
	Packs       []Pack    `json:"packs,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	PackTypeWord    = "word"
	PackTypeGrammar = "grammar"
)

type Pack struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	LessonID  int       `json:"lesson_id"`
	Type      string    `json:"type"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Word struct {
	ID        int       `json:"id"`
	PackID    int       `json:"pack_id"`
	AudioURL  string    `json:"audio_url"`
	RuText    string    `json:"ru_text"`
	UzText    string    `json:"uz_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	GrammarTypeFill  = "fill"
	GrammarTypeBuild = "build"
)

// Grammar is a quiz question. The fill variant carries QuestionText with a
// literal "___" blank marker plus Options/CorrectOption; the build variant
// carries only Sentence.
type Grammar struct {
	ID            int       `json:"id"`
	PackID        int       `json:"pack_id"`
	Type          string    `json:"type"`
	QuestionText  string    `json:"question_text,omitempty"`
	Options       []string  `json:"options,omitempty"`
	CorrectOption int       `json:"correct_option"`
	Sentence      string    `json:"sentence,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GrammarTopic is the at-most-one educational record attached to a grammar
// pack. The backend signals absence with a 404.
type GrammarTopic struct {
	ID           int       `json:"id"`
	PackID       int       `json:"pack_id"`
	VideoURL     string    `json:"video_url"`
	MarkdownText string    `json:"markdown_text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Subscription struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	IsActive         bool      `json:"is_active"`
	CreatedByAdminID int       `json:"created_by_admin_id"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type SubscriptionStats struct {
	TotalRevenue             float64        `json:"total_revenue"`
	MonthlyRevenue           float64        `json:"monthly_revenue"`
	YearlyRevenue            float64        `json:"yearly_revenue"`
	ActiveSubscriptions      int            `json:"active_subscriptions"`
	TotalPaidSubscriptions   int            `json:"total_paid_subscriptions"`
	AverageSubscriptionValue float64        `json:"average_subscription_value"`
	RevenueByMonth           []MonthRevenue `json:"revenue_by_month"`
}

type BusinessConfig struct {
	ID                 int       `json:"id"`
	TelegramURL        string    `json:"telegram_url"`
	InstagramURL       string    `json:"instagram_url"`
	WebsiteURL         string    `json:"website_url"`
	SupportEmail       string    `json:"support_email"`
	RequiredAppVersion string    `json:"required_app_version"`
	CompanyName        string    `json:"company_name"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Session is a console login. It holds the backend bearer tokens; the
// console itself has no account database.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}
