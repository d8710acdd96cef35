package service

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/tieubaoca/smartmail-be/config"
	"github.com/tieubaoca/smartmail-be/repository"
	"github.com/tieubaoca/smartmail-be/types"
	"github.com/tieubaoca/smartmail-be/utils"
	"golang.org/x/net/html"
)

// SeenUIDsFileName is the per-mailbox dedup ledger of processed message UIDs.
const SeenUIDsFileName = ".seen_uids.json"

var (
	urlPattern         = regexp.MustCompile(`https?://\S+`)
	boilerplatePattern = regexp.MustCompile(`(?i)(logo|icon|image|powered by|view in browser|calendar)`)
	rulePattern        = regexp.MustCompile(`[-=]{2,}`)
	blankLinesPattern  = regexp.MustCompile(`\n{3,}`)

	// Everything after the first of these markers is footer noise.
	cutoffKeywords = []string{"Manage notifications", "Privacy policy", "Contact us", "Copyright"}
)

// MailService fetches inbox messages over IMAP for a date range, extracts
// to-do items per message and saves PDF attachments so they can be ingested
// later. Processed message UIDs go into a ledger so re-runs skip them.
type MailService struct {
	cfg           config.MailConfig
	attachmentDir string
	taskService   *TaskService
}

func NewMailService(cfg config.MailConfig, attachmentDir string, taskService *TaskService) *MailService {
	return &MailService{
		cfg:           cfg,
		attachmentDir: attachmentDir,
		taskService:   taskService,
	}
}

// BuildDateRange maps a user-facing date filter onto the half-open IMAP
// SINCE/BEFORE window. Equal dates yield a single-day filter; a to-date at or
// before the from-date is forced to the day after it.
func BuildDateRange(fromDate, toDate time.Time) (since, before time.Time) {
	since = truncateDay(fromDate)
	before = truncateDay(toDate)
	if toDate.IsZero() || !before.After(since) {
		before = since.AddDate(0, 0, 1)
	}
	return since, before
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AttachmentDir returns the folder where this user's attachments are saved.
func (s *MailService) AttachmentDir() string {
	return filepath.Join(s.attachmentDir, s.cfg.User)
}

// ProcessMail fetches the unseen messages in the date range, extracts tasks
// and saves attachments. An authentication failure is fatal for the run but
// writes nothing; per-message failures are logged and skipped. The UID ledger
// is saved once at the end with whatever succeeded.
func (s *MailService) ProcessMail(ctx context.Context, filter types.MailFilter) *types.MailReport {
	ledger := repository.NewLedgerRepo(filepath.Join(s.AttachmentDir(), SeenUIDsFileName))
	seen, err := ledger.Load()
	if err != nil {
		return &types.MailReport{Status: types.StatusError, Results: []types.EmailTaskResult{}, ErrorMessage: err.Error()}
	}

	c, err := client.DialTLS(imapAddr(s.cfg.Host), nil)
	if err != nil {
		return &types.MailReport{Status: types.StatusError, Results: []types.EmailTaskResult{}, ErrorMessage: err.Error()}
	}
	defer c.Logout()

	if err := c.Login(s.cfg.User, s.cfg.Password); err != nil {
		authErr := &types.AuthenticationError{Err: err}
		return &types.MailReport{Status: types.StatusError, Results: []types.EmailTaskResult{}, ErrorMessage: authErr.Error()}
	}

	if _, err := c.Select("INBOX", true); err != nil {
		return &types.MailReport{Status: types.StatusError, Results: []types.EmailTaskResult{}, ErrorMessage: err.Error()}
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since, criteria.Before = BuildDateRange(filter.FromDate, filter.ToDate)
	uids, err := c.UidSearch(criteria)
	if err != nil {
		return &types.MailReport{Status: types.StatusError, Results: []types.EmailTaskResult{}, ErrorMessage: err.Error()}
	}

	var unseen []uint32
	for _, uid := range uids {
		if _, ok := seen[formatUID(uid)]; ok {
			continue
		}
		unseen = append(unseen, uid)
	}

	report := &types.MailReport{Status: types.StatusSuccess, Results: []types.EmailTaskResult{}}
	if len(unseen) == 0 {
		return report
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(unseen...)
	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.UidFetch(seqset, items, messages)
	}()

	for msg := range messages {
		email, err := s.parseMessage(msg, section)
		if err != nil {
			log.Printf("failed to parse message %d: %v", msg.Uid, err)
			continue
		}

		extraction := ""
		if s.taskService != nil {
			extraction, err = s.taskService.ExtractTodo(ctx, *email)
			if err != nil {
				log.Printf("task extraction failed for message %d: %v", msg.Uid, err)
				continue
			}
		}

		report.Results = append(report.Results, types.EmailTaskResult{
			Subject:     email.Subject,
			From:        email.From,
			Date:        email.Date,
			Attachments: email.Attachments,
			Extraction:  extraction,
		})
		seen[email.UID] = struct{}{}
	}

	if err := <-done; err != nil {
		report.Status = types.StatusError
		report.ErrorMessage = err.Error()
	}

	// Persist whatever succeeded even when the fetch ended in an error.
	if err := ledger.Save(seen); err != nil {
		report.Status = types.StatusError
		report.ErrorMessage = err.Error()
	}
	return report
}

func (s *MailService) parseMessage(msg *imap.Message, section *imap.BodySectionName) (*types.EmailMessage, error) {
	email := &types.EmailMessage{
		UID:         formatUID(msg.Uid),
		Attachments: []string{},
	}
	if msg.Envelope != nil {
		email.Subject = msg.Envelope.Subject
		email.Date = msg.Envelope.Date
		if len(msg.Envelope.From) > 0 {
			email.From = msg.Envelope.From[0].Address()
		}
	}

	r := msg.GetBody(section)
	if r == nil {
		return email, nil
	}
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, err
	}

	var plainBody, htmlBody string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("failed to read message part: %v", err)
			break
		}
		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			b, err := io.ReadAll(p.Body)
			if err != nil {
				continue
			}
			if contentType == "text/plain" && plainBody == "" {
				plainBody = string(b)
			} else if contentType == "text/html" && htmlBody == "" {
				htmlBody = string(b)
			}
		case *mail.AttachmentHeader:
			filename, err := h.Filename()
			if err != nil || filename == "" {
				continue
			}
			saved, err := s.saveAttachment(filename, p.Body)
			if err != nil {
				log.Printf("failed to save attachment %s: %v", filename, err)
				continue
			}
			email.Attachments = append(email.Attachments, saved)
		}
	}

	body := plainBody
	if body == "" {
		body = htmlBody
	}
	email.Body = CleanEmailBody(body)
	return email, nil
}

func (s *MailService) saveAttachment(filename string, body io.Reader) (string, error) {
	dir := s.AttachmentDir()
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	name := utils.SanitizeFilename(filename)
	if err := utils.WriteFileFromReader(filepath.Join(dir, name), body); err != nil {
		return "", err
	}
	return name, nil
}

// CleanEmailBody strips HTML, URLs and footer boilerplate from a raw email
// body so the extraction prompt sees only meaningful text.
func CleanEmailBody(body string) string {
	body = stripHTML(body)
	body = urlPattern.ReplaceAllString(body, "")
	body = boilerplatePattern.ReplaceAllString(body, "")
	body = rulePattern.ReplaceAllString(body, "")
	body = strings.ReplaceAll(body, "\r", "")
	body = strings.ReplaceAll(body, "\u00a0", " ")
	body = blankLinesPattern.ReplaceAllString(body, "\n\n")
	for _, kw := range cutoffKeywords {
		if idx := strings.Index(body, kw); idx != -1 {
			body = body[:idx]
		}
	}
	return strings.TrimSpace(body)
}

func stripHTML(input string) string {
	if !strings.Contains(input, "<") {
		return input
	}
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

func imapAddr(host string) string {
	if strings.Contains(host, ":") {
		return host
	}
	return host + ":993"
}

func formatUID(uid uint32) string {
	return strconv.FormatUint(uint64(uid), 10)
}
