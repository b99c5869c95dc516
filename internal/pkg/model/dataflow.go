package model

import (
	"context"

	"github.com/keboola/go-client/pkg/keboola"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/kbc-conform/internal/pkg/log"
	"github.com/keboola/kbc-conform/internal/pkg/trigger"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

// Dataflow is a flow of tasks run by triggers.
type Dataflow struct {
	ID   keboola.ConfigID `json:"id" validate:"required"`
	Name string           `json:"name"`
	// Triggers are nil if the dataflow has no trigger settings.
	Triggers *trigger.Settings `json:"-"`
	raw      *orderedmap.OrderedMap
}

// NewDataflow builds the dataflow from the raw payload, skipped invalid trigger entries are logged as warnings.
func NewDataflow(ctx context.Context, raw any, logger log.Logger) (*Dataflow, error) {
	values, err := rawObject(KindDataflow, raw)
	if err != nil {
		return nil, err
	}

	d := &Dataflow{
		ID:   keboola.ConfigID(stringValue(values, "id")),
		Name: stringValue(values, "name"),
		raw:  values,
	}

	if err := entityValidator.Validate(ctx, d); err != nil {
		return nil, errors.PrefixErrorf(err, `invalid %s "%s"`, KindDataflow, d.ID)
	}

	d.Triggers, err = trigger.FromRaw(values, d.Ref())
	if err != nil {
		return nil, err
	}

	logger = logger.WithComponent("model.dataflow").With(attribute.String("dataflow.id", d.ID.String()))
	if d.Triggers == nil {
		logger.Debug(ctx, "Dataflow has no trigger settings.")
		return d, nil
	}

	for _, entry := range d.Triggers.AllInvalid() {
		logger.Warnf(ctx, `Skipped invalid trigger entry "%s": %s`, entry.Path(), entry.Err)
	}
	logger.Debugf(ctx, "Loaded %d triggers.", d.Triggers.Len())
	return d, nil
}

func (d *Dataflow) Ref() trigger.ParentRef {
	return trigger.ParentRef{Kind: KindDataflow, ID: d.ID.String()}
}

func (d *Dataflow) Raw() *orderedmap.OrderedMap {
	return d.raw.Clone()
}

// HasSchedules returns true if any trigger has a populated schedule.
func (d *Dataflow) HasSchedules() bool {
	return d.Triggers != nil && d.Triggers.HasAnySchedules()
}
