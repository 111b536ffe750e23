// Package assistant is the scripted "AI" helper: a keyword lookup over a
// fixed set of canned answers, plus the session transcript. There is no
// model behind it and no intent to add one.
package assistant

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("message content is empty")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

var cannedResponses = map[string]string{
	"love": "The Bible speaks extensively about love. 1 Corinthians 13:4-7 tells us that 'Love is patient, love is kind. It does not envy, it does not boast, it is not proud. It does not dishonor others, it is not self-seeking, it is not easily angered, it keeps no record of wrongs. Love does not delight in evil but rejoices with the truth. It always protects, always trusts, always hopes, always perseveres.' John 3:16 also famously describes God's love: 'For God so loved the world that he gave his one and only Son, that whoever believes in him shall not perish but have eternal life.'",

	"sermon": "The Sermon on the Mount is one of Jesus' most famous teachings, found in Matthew chapters 5-7. It begins with the Beatitudes ('Blessed are the poor in spirit...') and includes the Lord's Prayer, the Golden Rule, and teachings on subjects like anger, lust, divorce, oaths, loving enemies, giving to the needy, prayer, fasting, worry, judging others, and more. It concludes with the Parable of the Wise and Foolish Builders. The sermon emphasizes the importance of righteousness that exceeds external compliance and instead transforms the heart.",

	"disciples": "Jesus had 12 disciples (also called apostles): 1) Simon Peter, 2) Andrew (Peter's brother), 3) James son of Zebedee, 4) John (James' brother), 5) Philip, 6) Bartholomew (also called Nathanael), 7) Thomas, 8) Matthew (the tax collector), 9) James son of Alphaeus, 10) Thaddaeus (also called Judas son of James or Jude), 11) Simon the Zealot, and 12) Judas Iscariot (who betrayed Jesus). After Judas's death, Matthias was chosen to replace him in Acts 1:26.",

	"default": "I'd be happy to help answer your question about the Bible. Could you provide more details about what specific aspect of scripture or biblical teachings you're interested in learning about?",
}

// respond picks the canned answer for a query. Matching is a fixed
// keyword cascade, first hit wins.
func respond(query string) string {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "love"):
		return cannedResponses["love"]
	case strings.Contains(lower, "sermon"), strings.Contains(lower, "mount"):
		return cannedResponses["sermon"]
	case strings.Contains(lower, "disciples"), strings.Contains(lower, "apostles"):
		return cannedResponses["disciples"]
	default:
		return cannedResponses["default"]
	}
}

// Service keeps one in-memory transcript per process. The transcript is
// session-scoped on purpose; chat history does not survive a restart.
type Service struct {
	mu       sync.RWMutex
	messages []Message
}

func NewService() *Service {
	return &Service{}
}

// Send appends the user message and the assistant's reply to the
// transcript and returns the reply.
func (s *Service) Send(content string) (Message, error) {
	if strings.TrimSpace(content) == "" {
		return Message{}, ErrEmptyMessage
	}

	now := time.Now().UnixMilli()
	userMsg := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: now,
	}
	reply := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   respond(content),
		Timestamp: now,
	}

	s.mu.Lock()
	s.messages = append(s.messages, userMsg, reply)
	s.mu.Unlock()

	return reply, nil
}

// Transcript returns the full conversation in order.
func (s *Service) Transcript() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
