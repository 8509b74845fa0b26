package domain

// AccessLevel controls who may see a prototype.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessPrivate    AccessLevel = "private"
	AccessRestricted AccessLevel = "restricted"
)

func (a AccessLevel) Valid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessRestricted:
		return true
	}
	return false
}

// Reaction is the optional emoji-style reaction attached to feedback.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionLove    Reaction = "love"
	ReactionDislike Reaction = "dislike"
)

func (r Reaction) Valid() bool {
	switch r {
	case ReactionLike, ReactionLove, ReactionDislike:
		return true
	}
	return false
}

// Role governs which admin routes a user may reach.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleReader Role = "reader"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleReader:
		return true
	}
	return false
}

// Sentiment is derived from an evaluation's free-text answer.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// DataMode selects the data source the portal reads from.
type DataMode string

const (
	ModeMock DataMode = "mock"
	ModeReal DataMode = "real"
)

func (m DataMode) Valid() bool {
	return m == ModeMock || m == ModeReal
}

// ParseDataMode returns the mode for s, or false when s is not a known mode.
func ParseDataMode(s string) (DataMode, bool) {
	m := DataMode(s)
	return m, m.Valid()
}
