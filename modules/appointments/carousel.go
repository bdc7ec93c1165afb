package appointments

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/carousel"
	"github.com/medcare-web/medcare/pkg/logger"
)

// CarouselRequest is a navigation action on one viewer's carousel.
type CarouselRequest struct {
	Viewer string `path:"viewer"`
	Action string `path:"action"`
	Index  int    `query:"index"`
}

// testimonialStream runs a carousel for the connected viewer and patches
// every change until the viewer leaves.
func (s *Service) testimonialStream(_ handler.Context, _ struct{}) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		kick := make(chan struct{}, 1)
		notify := func() {
			select {
			case kick <- struct{}{}:
			default:
			}
		}

		region := announce.NewLiveRegion(announce.WithClock(s.clock), announce.WithOnClear(notify))
		rot, err := carousel.New(s.testimonials,
			carousel.WithInterval[Testimonial](s.cfg.RotationInterval),
			carousel.WithClock[Testimonial](s.clock),
			carousel.WithOnChange(func(int, Testimonial) { notify() }),
			carousel.WithAnnouncer(announce.Multi(region, announce.Func(func(context.Context, string) { notify() })), describeTestimonial),
		)
		if err != nil {
			return err
		}

		viewer := uuid.NewString()
		s.viewers.add(viewer, rot)
		defer s.viewers.remove(viewer)
		rot.Start()
		defer rot.Stop()

		log := s.log.With("viewer", viewer)
		log.DebugContext(stream, "testimonial stream opened")
		defer log.DebugContext(stream, "testimonial stream closed")

		send := func() error {
			return stream.SendMultiple(
				handler.Patch(s.views.Testimonial(TestimonialParams{
					Viewer:      viewer,
					Index:       rot.Index(),
					Total:       rot.Len(),
					Testimonial: rot.Current(),
				})),
				handler.Patch(s.views.Announcement(region.Current())),
			)
		}
		if err := send(); err != nil {
			return err
		}
		for {
			select {
			case <-stream.Done():
				return nil
			case <-kick:
				if err := send(); err != nil {
					log.DebugContext(stream, "testimonial patch", logger.Error(err))
					return nil
				}
			}
		}
	})
}

func (s *Service) testimonialControl(ctx handler.Context, req CarouselRequest) handler.Response {
	rot, ok := s.viewers.get(req.Viewer)
	if !ok {
		return handler.Error(ErrUnknownViewer)
	}
	switch req.Action {
	case "next":
		rot.Next(ctx)
	case "prev":
		rot.Prev(ctx)
	case "pause":
		rot.Pause()
	case "resume":
		rot.Resume()
	case "goto":
		if err := rot.GoTo(ctx, req.Index); err != nil {
			return handler.Error(err)
		}
	default:
		return handler.Error(ErrUnknownAction)
	}
	return handler.Empty(http.StatusNoContent)
}
