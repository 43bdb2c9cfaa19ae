package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
	"github.com/yokuflik/price-tracker/internal/domain/repository"
	"github.com/yokuflik/price-tracker/pkg/logger"
	"github.com/yokuflik/price-tracker/pkg/metrics"
	"github.com/yokuflik/price-tracker/pkg/utils"
	"github.com/yokuflik/price-tracker/templates"
)

// Searcher produces the merged raw offers for one tracked flight.
type Searcher interface {
	Search(ctx context.Context, flight *entity.TrackedFlight) ([]entity.Offer, error)
}

// PriceReconciler re-prices every tracked flight once per cycle: expired
// flights are archived and removed, the rest are searched, filtered and
// compared against their persisted best-found state, raising at most one
// price alert per flight per cycle.
type PriceReconciler struct {
	flights  repository.FlightRepository
	history  repository.HistoryRepository
	notifier repository.Notifier
	searcher Searcher
	logger   logger.Logger
	metrics  *metrics.Metrics
	workers  int

	// cycleMu keeps cycles from overlapping: a tick that fires while the
	// previous pass is still running is skipped, not queued.
	cycleMu sync.Mutex

	now func() time.Time
}

// NewPriceReconciler creates a price reconciler. workers bounds the number
// of tracked flights re-priced concurrently; metrics may be nil.
func NewPriceReconciler(
	flights repository.FlightRepository,
	history repository.HistoryRepository,
	notifier repository.Notifier,
	searcher Searcher,
	workers int,
	log logger.Logger,
	m *metrics.Metrics,
) *PriceReconciler {
	if workers < 1 {
		workers = 1
	}
	return &PriceReconciler{
		flights:  flights,
		history:  history,
		notifier: notifier,
		searcher: searcher,
		logger:   log,
		metrics:  m,
		workers:  workers,
		now:      time.Now,
	}
}

// RunCycle processes all tracked flights once. Per-flight provider errors
// never abort the batch; the flight's stored state is left untouched and
// retried next cycle. Cancelling ctx stops feeding new flights to the
// workers while in-flight ones run to completion, writes included.
func (r *PriceReconciler) RunCycle(ctx context.Context) {
	if !r.cycleMu.TryLock() {
		r.logger.Warn("Previous reconcile cycle still running, skipping this tick")
		return
	}
	defer r.cycleMu.Unlock()

	start := r.now()
	flights, err := r.flights.ListTrackedFlights(ctx)
	if err != nil {
		r.logger.Error("Failed to list tracked flights", "error", err)
		r.countError("list_flights")
		return
	}
	r.logger.Info("Reconcile cycle started", "flights", len(flights))

	jobs := make(chan *entity.TrackedFlight)
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for flight := range jobs {
				r.reconcileOne(ctx, flight)
			}
		}()
	}

feed:
	for _, flight := range flights {
		select {
		case <-ctx.Done():
			r.logger.Info("Reconcile cycle interrupted", "error", ctx.Err())
			break feed
		case jobs <- flight:
		}
	}
	close(jobs)
	wg.Wait()

	if r.metrics != nil {
		r.metrics.CyclesCompleted.Inc()
		r.metrics.CycleDuration.Observe(r.now().Sub(start).Seconds())
	}
	r.logger.Info("Reconcile cycle completed", "duration", r.now().Sub(start).String())
}

func (r *PriceReconciler) reconcileOne(ctx context.Context, flight *entity.TrackedFlight) {
	log := r.logger.With("flightId", flight.ID, "route", flight.Route())
	now := r.now()

	if r.metrics != nil {
		r.metrics.FlightsChecked.Inc()
	}

	if flight.IsExpired(now) {
		r.archiveExpired(ctx, flight, log)
		return
	}

	offers, err := r.searcher.Search(ctx, flight)
	if err != nil {
		log.Error("Flight search failed",
			"date", flight.RequestedDate.Format("2006-01-02"),
			"error", err)
		r.countError("search")
		return
	}
	offers = FilterOffers(offers, flight.MoreCriteria)

	// Writes run to completion even when shutdown cancels ctx.
	writeCtx := context.WithoutCancel(ctx)

	best, bestPrice, ok := cheapestOffer(offers)
	if !ok {
		flight.LastChecked = &now
		if err := r.flights.UpdateBestPrice(writeCtx, flight.ID, now, flight.LastPriceFound, flight.BestFound); err != nil {
			log.Error("Failed to persist last-checked time", "error", err)
			r.countError("update_flight")
			return
		}
		log.Info("No qualifying offers this cycle")
		return
	}

	prevBest := flight.BestFound
	alreadyMet := prevBest != nil && prevBest.Price <= flight.TargetPrice
	improved := prevBest == nil || bestPrice < prevBest.Price

	flight.LastChecked = &now
	flight.LastPriceFound = &bestPrice

	if improved {
		flight.BestFound = &entity.BestFound{
			Price:      bestPrice,
			TimeWindow: bestWindow(best),
			Airline:    best.Airline(),
		}
	}

	if err := r.flights.UpdateBestPrice(writeCtx, flight.ID, now, flight.LastPriceFound, flight.BestFound); err != nil {
		log.Error("Failed to persist price state", "error", err)
		r.countError("update_flight")
		return
	}

	if improved && bestPrice <= flight.TargetPrice && (!alreadyMet || flight.NotifyOnAnyDrop) {
		r.foundBetter(writeCtx, flight, log)
	}
}

// archiveExpired writes the flight's final state to history and removes it
// from active tracking. A storage failure leaves the flight untouched so
// the next cycle retries.
func (r *PriceReconciler) archiveExpired(ctx context.Context, flight *entity.TrackedFlight, log logger.Logger) {
	writeCtx := context.WithoutCancel(ctx)

	if err := r.history.ArchiveExpired(writeCtx, flight); err != nil {
		log.Error("Failed to archive expired flight", "error", err)
		r.countError("archive_expired")
		return
	}
	if err := r.flights.DeleteTrackedFlight(writeCtx, flight.ID); err != nil {
		log.Error("Failed to delete expired flight", "error", err)
		r.countError("delete_flight")
		return
	}

	if r.metrics != nil {
		r.metrics.FlightsExpired.Inc()
	}
	log.Info("Tracked flight expired and archived",
		"windowEnd", flight.WindowEnd().Format("2006-01-02"))
}

// foundBetter records the find in history and alerts the user. Both side
// effects are fire-and-forget: failures are logged, never retried.
func (r *PriceReconciler) foundBetter(ctx context.Context, flight *entity.TrackedFlight, log logger.Logger) {
	if err := r.history.ArchiveFoundBetter(ctx, flight); err != nil {
		log.Error("Failed to archive found flight", "error", err)
		r.countError("archive_found")
	}

	subject, body := templates.PriceAlert(flight)
	if err := r.notifier.NotifyUser(ctx, flight.UserID, subject, body); err != nil {
		log.Error("Failed to notify user", "error", err)
		r.countError("notify")
		return
	}

	if r.metrics != nil {
		r.metrics.NotificationsSent.Inc()
	}
	log.Info("Found better flight",
		"price", flight.BestFound.Price,
		"target", flight.TargetPrice,
		"airline", flight.BestFound.Airline)
}

func (r *PriceReconciler) countError(operation string) {
	if r.metrics != nil {
		r.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}

// cheapestOffer selects the single cheapest offer by total price, ties
// broken by first-seen order. Offers with an unparseable price are skipped;
// ok is false when none had one.
func cheapestOffer(offers []entity.Offer) (best *entity.Offer, bestPrice float64, ok bool) {
	for i := range offers {
		price, err := offers[i].TotalPrice()
		if err != nil {
			continue
		}
		if !ok || price < bestPrice {
			best = &offers[i]
			bestPrice = price
			ok = true
		}
	}
	return best, bestPrice, ok
}

// bestWindow formats the departure/arrival window of the first segment of
// the offer's first itinerary.
func bestWindow(offer *entity.Offer) string {
	itinerary := offer.FirstItinerary()
	if itinerary == nil || len(itinerary.Segments) == 0 {
		return ""
	}
	first := itinerary.Segments[0]
	return utils.FormatTimeWindow(first.Departure.At, first.Arrival.At)
}
