package handler

import (
	"context"
	"errors"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/logger"
	"github.com/kbukum/gqlkit/pipeline"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
	"github.com/kbukum/gqlkit/try"
)

// Stages reported in logs.
const (
	StagePrevious  = "previous"
	StageGenerate  = "generate"
	StageValidate  = "validate"
	StageDispatch  = "dispatch"
	StageProcess   = "process"
	StageStreaming = "streaming"
)

// Request runs one request cycle and returns its result stream.
//
// A failed previous value is re-emitted as the only stream value and neither
// gen nor the client is called. Generator, validation and dispatch failures
// each end the stream after a single failure value. Processor failures are
// emitted in place and the stream continues with the next result.
//
// The returned error is non-nil only when h has no client or gen/proc is nil.
func Request[P, O, D any](
	ctx context.Context,
	h *Handler[D],
	previous try.Try[P],
	gen Generator[P],
	proc Processor[D, O],
) (*Stream[O], error) {
	client, err := h.Client()
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, goerrors.InvalidInput("generator", "must not be nil")
	}
	if proc == nil {
		return nil, goerrors.InvalidInput("processor", "must not be nil")
	}
	log := h.logger().WithFields(logger.Fields(logger.FieldClient, client.Name()))

	prev, err := previous.Get()
	if err != nil {
		log.Debug("previous value failed, skipping dispatch", logger.MergeWithError(
			logger.Fields(logger.FieldStage, StagePrevious), err))
		return failed[O](ctx, err), nil
	}

	desc, err := try.Call(func() (*request.Descriptor, error) {
		d, err := gen(ctx, prev)
		if err == nil && d == nil {
			err = errors.New("generator returned no descriptor")
		}
		return d, err
	}).Get()
	if err != nil {
		err = goerrors.GeneratorFailed(err)
		log.Warn("request generation failed", logger.MergeWithError(
			logger.Fields(logger.FieldStage, StageGenerate), err))
		return failed[O](ctx, err), nil
	}

	log = log.WithFields(logger.Fields(
		logger.FieldRequestID, desc.ID(),
		logger.FieldDescription, desc.Description(),
	))

	if err := desc.Validate(); err != nil {
		log.Warn("request rejected", logger.MergeWithError(
			logger.Fields(logger.FieldStage, StageValidate), err))
		return failed[O](ctx, err), nil
	}

	streamCtx, cancel := context.WithCancel(ctx)
	iter, err := client.Execute(streamCtx, desc)
	if err != nil {
		cancel()
		err = goerrors.DispatchFailed(client.Name(), err)
		log.Warn("dispatch failed", logger.MergeWithError(
			logger.Fields(logger.FieldStage, StageDispatch), err))
		return failed[O](ctx, err), nil
	}
	if iter == nil {
		cancel()
		return newStream[O](pipeline.Empty[try.Try[O]]().Open(ctx), nil, nil), nil
	}
	log.Debug("request dispatched", logger.Fields(logger.FieldStage, StageDispatch))

	src := pipeline.From[result.Raw[D]](iter)
	processed := pipeline.Map(src, func(ctx context.Context, raw result.Raw[D]) (try.Try[O], error) {
		res := result.FromRaw(raw)
		out := try.Call(func() (O, error) { return proc(ctx, res) })
		return try.MapErr(out, func(err error) error {
			return goerrors.ProcessorFailed(err)
		}), nil
	})
	terminated := pipeline.OnError(processed, func(ctx context.Context, err error) (try.Try[O], bool) {
		if streamCtx.Err() != nil {
			return try.Try[O]{}, false
		}
		return try.Failure[O](goerrors.DispatchFailed(client.Name(), err)), true
	})
	logged := pipeline.Tap(terminated, func(_ context.Context, v try.Try[O]) error {
		if err := v.Err(); err != nil {
			stage := StageProcess
			if ae, ok := goerrors.AsAppError(err); ok && ae.Code == goerrors.ErrCodeDispatchFailed {
				stage = StageStreaming
			}
			log.Warn("result failed", logger.MergeWithError(logger.Fields(logger.FieldStage, stage), err))
		}
		return nil
	})

	return newStream(logged.Open(streamCtx), streamCtx, cancel), nil
}

func failed[O any](ctx context.Context, err error) *Stream[O] {
	return newStream(pipeline.Of(try.Failure[O](err)).Open(ctx), nil, nil)
}
