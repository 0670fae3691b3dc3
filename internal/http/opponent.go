package httphandler

import (
	"errors"
	"time"

	"bombfour/internal/game"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// scheduleOpponent computes and applies the computer's reply after the configured pause
func (h *Handler) scheduleOpponent(rm *Room, gen uuid.UUID) {
	h.after(h.cfg.Server.OpponentDelay, func() {
		h.opponentTurn(rm, gen)
	})
}

// opponentTurn plays for the computer unless the room moved on to another game meanwhile
func (h *Handler) opponentTurn(rm *Room, gen uuid.UUID) {
	rm.mu.Lock()
	e := rm.Engine
	if e.Generation() != gen {
		rm.mu.Unlock()
		h.log.WithField("room", rm.Code).Debug("discarded opponent move for a finished game")
		return
	}

	m, ok := e.FindOpponentMove()
	res, err := e.ApplyOpponentMove(gen, m)
	rm.Thinking = false
	if err != nil {
		rm.mu.Unlock()
		if !errors.Is(err, game.ErrGameOver) {
			h.log.WithError(err).WithField("room", rm.Code).Warn("opponent move failed")
		}
		return
	}
	rm.Rev++
	rm.Touched = time.Now()
	if ok {
		h.record(rm, describe(res, game.Opponent, m.At.Row, m.At.Col))
	} else {
		h.record(rm, "No moves left: draw")
	}
	rm.mu.Unlock()

	h.log.WithFields(logrus.Fields{
		"room": rm.Code,
		"tier": m.Tier,
		"row":  m.At.Row,
		"col":  m.At.Col,
	}).Debug("opponent played")
	notify(rm)
}
