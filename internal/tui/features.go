package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/client"
	"github.com/yigit/studyhub/internal/pkg/notification"
)

// row is one line of a feature screen.
type row struct {
	ID     string
	Title  string
	Detail string
}

// feature loads the rows of one feature screen. Rows of features with a
// deletePath can be deleted.
type feature struct {
	title      string
	deletePath string
	load       func(ctx context.Context, search string) ([]row, error)
}

func listed[T any](c *client.Client, path string, toRow func(T) row) func(context.Context, string) ([]row, error) {
	return func(ctx context.Context, search string) ([]row, error) {
		items, err := client.List[T](ctx, c, path, search)
		if err != nil {
			return nil, err
		}
		rows := make([]row, 0, len(items))
		for _, item := range items {
			rows = append(rows, toRow(item))
		}
		return rows, nil
	}
}

// newFeatures maps every feature view to its screen.
func newFeatures(c *client.Client) map[string]feature {
	return map[string]feature{
		"dashboard": {
			title: "Dashboard",
			load:  listed(c, "/activities", activityRow),
		},
		"notes": {
			title:      "Notes",
			deletePath: "/notes",
			load: listed(c, "/notes", func(n models.Note) row {
				return row{ID: n.ID, Title: n.Title, Detail: joinDetail(n.UserName, strings.Join(n.Tags, ", "), fmt.Sprintf("%d saves", n.Saves))}
			}),
		},
		"flashcards": {
			title:      "Flashcards",
			deletePath: "/flashcards",
			load: listed(c, "/flashcards", func(s models.FlipCardSet) row {
				return row{ID: s.ID, Title: s.Title, Detail: joinDetail(fmt.Sprintf("%d cards", len(s.Cards)), strings.Join(s.Tags, ", "))}
			}),
		},
		"communities": {
			title:      "Communities",
			deletePath: "/communities",
			load: listed(c, "/communities", func(cm models.Community) row {
				member := ""
				if cm.IsMember {
					member = "joined"
				}
				return row{ID: cm.ID, Title: cm.Name, Detail: joinDetail(fmt.Sprintf("%d members", cm.MemberCount), member)}
			}),
		},
		"sessions": {
			title:      "Study Sessions",
			deletePath: "/sessions",
			load: listed(c, "/sessions", func(s models.StudySession) row {
				return row{ID: s.ID, Title: s.Title, Detail: joinDetail(s.Subject, s.ScheduledTime.Format("Jan 2 15:04"), fmt.Sprintf("%d min", s.Duration))}
			}),
		},
		"infovids": {
			title:      "Infovids",
			deletePath: "/infovids",
			load: listed(c, "/infovids", func(v models.VideoReel) row {
				return row{ID: v.ID, Title: v.Title, Detail: joinDetail(v.CreatorName, v.Subject, fmt.Sprintf("%ds", v.Duration))}
			}),
		},
		"store": {
			title:      "Course Store",
			deletePath: "/courses",
			load: listed(c, "/courses", func(cr models.Course) row {
				return row{ID: cr.ID, Title: cr.Title, Detail: joinDetail(cr.InstructorName, fmt.Sprintf("$%.2f", cr.Price), fmt.Sprintf("%.1f★", cr.Rating))}
			}),
		},
		"chat": {
			title:      "Chats",
			deletePath: "/chats",
			load: listed(c, "/chats", func(ch models.Chat) row {
				last := ""
				if n := len(ch.Messages); n > 0 {
					last = ch.Messages[n-1].SenderName + ": " + ch.Messages[n-1].Content
				}
				return row{ID: ch.ID, Title: chatTitle(ch), Detail: last}
			}),
		},
		"activities": {
			title:      "Recent Activity",
			deletePath: "/activities",
			load:       listed(c, "/activities", activityRow),
		},
		"notifications": {
			title:      "Notifications",
			deletePath: "/notifications",
			load: listed(c, "/notifications", func(n notification.Notification) row {
				return row{ID: n.ID, Title: n.Title, Detail: joinDetail(string(n.Kind), n.Message)}
			}),
		},
		"profile": {
			title: "Profile",
			load: func(ctx context.Context, _ string) ([]row, error) {
				u, err := c.Profile(ctx)
				if err != nil {
					return nil, err
				}
				return profileRows(u), nil
			},
		},
		"settings": {
			title: "Settings",
			load: func(context.Context, string) ([]row, error) {
				return []row{
					{ID: "signout", Title: "Sign out", Detail: "press x"},
				}, nil
			},
		},
	}
}

func activityRow(a models.RecentActivity) row {
	return row{ID: a.ID, Title: a.Title, Detail: joinDetail(a.Description, a.Timestamp.Format("Jan 2 15:04"))}
}

func chatTitle(ch models.Chat) string {
	if ch.Name != "" {
		return ch.Name
	}
	names := make([]string, 0, len(ch.Participants))
	for _, p := range ch.Participants {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func profileRows(u *models.User) []row {
	return []row{
		{ID: "name", Title: "Name", Detail: u.Name},
		{ID: "email", Title: "Email", Detail: u.Email},
		{ID: "bio", Title: "Bio", Detail: valueOrDash(u.Bio)},
		{ID: "education", Title: "Education", Detail: valueOrDash(u.Education)},
		{ID: "location", Title: "Location", Detail: valueOrDash(u.Location)},
		{ID: "followers", Title: "Followers", Detail: fmt.Sprint(u.Followers)},
		{ID: "following", Title: "Following", Detail: fmt.Sprint(u.Following)},
	}
}

func joinDetail(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
