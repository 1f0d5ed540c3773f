package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stellar-admin/stellar-admin/internal/logs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLoginLog is the task type for persisting login audit rows.
	TaskLoginLog = "auth:login_log"
)

// LoginLogPayload describes one successful login.
type LoginLogPayload struct {
	UserID    int64     `json:"user_id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
}

// NewLoginLogTask constructs an Asynq task.
func NewLoginLogTask(payload LoginLogPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLoginLog, data), nil
}

// LoginRecorder enqueues login-log tasks from the HTTP process. It keeps
// login latency independent of the audit write.
type LoginRecorder struct {
	client *asynq.Client
}

// NewLoginRecorder constructs a LoginRecorder.
func NewLoginRecorder(client *asynq.Client) *LoginRecorder {
	return &LoginRecorder{client: client}
}

// RecordLogin enqueues one login audit task.
func (r *LoginRecorder) RecordLogin(ctx context.Context, userID int64, ip, userAgent string) error {
	task, err := NewLoginLogTask(LoginLogPayload{
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		LoginAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = r.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(3))
	return err
}

// LoginLogJob consumes login-log tasks in the worker process.
type LoginLogJob struct {
	repo   *logs.Repository
	logger *slog.Logger
}

// NewLoginLogJob constructs a LoginLogJob.
func NewLoginLogJob(repo *logs.Repository, logger *slog.Logger) *LoginLogJob {
	return &LoginLogJob{repo: repo, logger: logger}
}

// Handle processes TaskLoginLog tasks.
func (j *LoginLogJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload LoginLogPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := j.repo.Insert(ctx, logs.LoginLog{
		UserID:    payload.UserID,
		IP:        payload.IP,
		UserAgent: payload.UserAgent,
		LoginAt:   payload.LoginAt,
	}); err != nil {
		if j.logger != nil {
			j.logger.Error("insert login log", slog.Int64("user_id", payload.UserID), slog.Any("error", err))
		}
		return err
	}
	return nil
}
