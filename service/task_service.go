package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tieubaoca/smartmail-be/types"
)

const taskPromptTemplate = `You are a highly accurate email task and information extraction assistant.

Below is the detailed content of an email the user received. Your job is to extract the following clearly and concisely:

1 **Sender:** Confirm the sender's name or organization from the email.
2 **To-Do Task:** Is there any clear, actionable task for the user? If yes, list it simply. Example tasks: reply to someone, complete an assignment, attend a meeting, check an app. If none, write "None".
3 **Important Information / Notifications:** Any important non-actionable info the user should note? E.g., meetings scheduled, upcoming deadlines, notifications from apps, policy updates. If none, write "None".
4 **Ignore irrelevant content:** Completely ignore ads, newsletters, promotions if they contain no useful task or info.

---

### Output Format (Strictly follow this structure):

To-Do Task: <Actionable task or "None">
Important Information: <Important info or "None">

---

### Email Details:

Sender: %s
Subject: %s
Date: %s

Body:
--------
%s
--------
Attachments:
%s

-----
### Your Output (Follow the format strictly):
`

// TaskService extracts actionable to-do items from email messages through the
// generation collaborator.
type TaskService struct {
	aiService AIService
}

func NewTaskService(aiService AIService) *TaskService {
	return &TaskService{aiService: aiService}
}

// ExtractTodo runs the extraction prompt for one message and returns the
// model's structured text output.
func (s *TaskService) ExtractTodo(ctx context.Context, email types.EmailMessage) (string, error) {
	prompt := BuildTaskPrompt(email)
	msg, err := s.aiService.Chat(ctx, []types.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return "", &types.GenerationError{Err: err}
	}
	return strings.TrimSpace(msg.Content), nil
}

// BuildTaskPrompt renders the extraction prompt for one email.
func BuildTaskPrompt(email types.EmailMessage) string {
	attachments := "None"
	if len(email.Attachments) > 0 {
		attachments = strings.Join(email.Attachments, ", ")
	}
	return fmt.Sprintf(taskPromptTemplate,
		email.From,
		email.Subject,
		email.Date.Format("Mon, 02 Jan 2006 15:04:05"),
		email.Body,
		attachments,
	)
}
