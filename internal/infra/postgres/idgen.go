package postgres

import (
	"context"
	"log/slog"

	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/idgen"

	"github.com/jackc/pgx/v5"
)

var sequenceOf = map[idgen.Namespace]string{
	idgen.NamespaceParking:     "parking_id_seq",
	idgen.NamespaceEV:          "ev_id_seq",
	idgen.NamespaceReservation: "reservation_id_seq",
}

// Sequences issues ids from one Postgres sequence per namespace. nextval is
// not transactional, so a rolled-back reservation leaves a gap; ids are still
// never reused.
type Sequences struct {
	db     DBTX
	logger *slog.Logger
}

func NewSequences(db DBTX, logger *slog.Logger) *Sequences {
	return &Sequences{db: db, logger: logger}
}

func (s *Sequences) Next(ctx context.Context, ns idgen.Namespace) (int64, error) {
	seq, ok := sequenceOf[ns]
	if !ok {
		return 0, infra.NewRepoErr(infra.KindNotFound, "no sequence for namespace "+string(ns))
	}
	var id int64
	if err := s.db.QueryRow(ctx, "SELECT nextval($1::regclass)", pgx.Identifier{seq}.Sanitize()).Scan(&id); err != nil {
		return 0, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "nextval "+seq, err)
	}
	return id, nil
}
