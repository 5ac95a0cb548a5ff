package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bitfighters/launcher/internal/apperr"
)

// ScoreOutcome names what the server did with a submitted score.
type ScoreOutcome int

const (
	// ScoreRecorded means the score became the user's new highest score.
	ScoreRecorded ScoreOutcome = iota + 1
	// ScoreNotHigher means the score did not beat the current highest score.
	// The server treats this as success and so do we.
	ScoreNotHigher
)

func (o ScoreOutcome) String() string {
	switch o {
	case ScoreRecorded:
		return "recorded"
	case ScoreNotHigher:
		return "not higher"
	default:
		return "unknown"
	}
}

// ErrUnknownAction is returned when the backend answers 400 to an action it
// does not implement.
var ErrUnknownAction = errors.New("unknown backend action")

type scoreRequest struct {
	Action string `json:"action"`
	UserID int    `json:"user_id"`
	Score  int    `json:"score"`
}

type scoreResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Updated *bool  `json:"updated"`
}

// SubmitScore reports a score for userID.
func (c *Client) SubmitScore(ctx context.Context, userID, score int) (ScoreOutcome, error) {
	const op = "auth.submit_score"

	status, data, err := c.post(ctx, scoreRequest{Action: "update_score", UserID: userID, Score: score})
	if err != nil {
		return 0, apperr.Wrap(apperr.KindTransport, op, "score not submitted", err)
	}
	if status == http.StatusBadRequest {
		return 0, apperr.Wrap(apperr.KindTransport, op, "score not submitted", ErrUnknownAction)
	}
	if !isSuccess(status) {
		return 0, apperr.Wrap(apperr.KindTransport, op, "score not submitted", fmt.Errorf("server returned status %d", status))
	}

	var resp scoreResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, apperr.Wrap(apperr.KindDeserialization, op, "score not submitted", err)
	}
	if !resp.Success {
		return 0, apperr.Wrap(apperr.KindTransport, op, "score not submitted", errors.New(resp.Message))
	}
	if resp.Updated != nil && !*resp.Updated {
		return ScoreNotHigher, nil
	}
	return ScoreRecorded, nil
}
