// Package lifecycle holds the transitions that read shared state, check it
// and write it back: the bounty state machine and the redemption queue.
//
// Every operation receives the acting user explicitly. Each one runs inside
// a single transaction that holds the row lock of the affected entity and,
// in-process, a keyed mutex on the same entity. Nothing in this package
// calls an external service while a transaction is open.
package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wastebounty/backend/config"
	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/internal/common"
	"github.com/wastebounty/backend/internal/domain/detection"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/geoutil"
	"github.com/wastebounty/backend/pkg/keylock"
	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BountyMachine struct {
	bountyRepo repository.BountyRepository
	userRepo   repository.UserRepository
	notifier   client.Notifier
	policy     detection.Policy
	locks      *keylock.Locker
	now        func() time.Time
}

func NewBountyMachine(
	bountyRepo repository.BountyRepository,
	userRepo repository.UserRepository,
	notifier client.Notifier,
	policy detection.Policy,
	locks *keylock.Locker,
) *BountyMachine {
	return &BountyMachine{
		bountyRepo: bountyRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		policy:     policy,
		locks:      locks,
		now:        time.Now,
	}
}

func bountyLockKey(id string) string {
	return "bounty/" + id
}

// Create opens a bounty for a report whose photo contains waste.
func (m *BountyMachine) Create(
	ctx context.Context,
	reporterID string,
	location *geoutil.Point,
	detections []detection.Detection,
	beforeImage string,
) (*entity.Bounty, error) {
	if location == nil {
		return nil, errorx.New(errorx.LocationMissing, "Location is required to report waste")
	}

	award, ok := m.policy.GateForCreation(detections)
	if !ok {
		return nil, errorx.New(errorx.NoDetection, "No waste was detected in the photo")
	}

	bounty := &entity.Bounty{
		Base:           entity.Base{ID: uuid.NewString()},
		ReporterID:     reporterID,
		Lat:            sql.NullFloat64{Float64: location.Lat, Valid: true},
		Lon:            sql.NullFloat64{Float64: location.Lon, Valid: true},
		BeforeImage:    beforeImage,
		Status:         entity.BountyOpen,
		NumObjects:     award.NumObjects,
		PointsReporter: award.PointsReporter,
		PointsCleaner:  award.PointsCleaner,
		Labels:         detections,
	}

	if err := m.bountyRepo.Create(ctx, bounty); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bounty: %v", err)
		return nil, errorx.Unknown
	}

	common.IncBountyTransition(common.TransitionCreate)
	return bounty, nil
}

// Claim assigns an open bounty to a cleaner standing near it. The first
// successful claim wins, later ones see InvalidState.
func (m *BountyMachine) Claim(
	ctx context.Context, bountyID, claimerID string, location *geoutil.Point,
) (*entity.Bounty, error) {
	unlock := m.locks.Lock(bountyLockKey(bountyID))
	defer unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	bounty, err := m.getForUpdate(ctx, bountyID)
	if err != nil {
		return nil, err
	}

	if err := CheckClaimable(bounty, claimerID, location); err != nil {
		return nil, err
	}

	claimedAt := sql.NullTime{Time: m.now(), Valid: true}
	err = m.bountyRepo.Claim(ctx, bounty.ID, claimerID, claimedAt)
	if errors.Is(err, repository.ErrStaleBounty) {
		return nil, errorx.New(errorx.InvalidState, "Bounty was claimed by someone else")
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot claim bounty: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit claim of bounty: %v", err)
		return nil, errorx.Unknown
	}

	bounty.CleanerID = sql.NullString{String: claimerID, Valid: true}
	bounty.ClaimedAt = claimedAt
	bounty.Status = entity.BountyClaimed

	common.IncBountyTransition(common.TransitionClaim)
	m.notify(ctx, client.EventBountyClaimed,
		fmt.Sprintf("Your waste report %s has been claimed for cleanup.", bounty.ID),
		bounty.ReporterID)

	return bounty, nil
}

// Complete closes a claimed bounty once the cleaner, standing at the
// reported location, shows a photo without waste. AlreadyCompleted is
// returned together with the unchanged bounty.
func (m *BountyMachine) Complete(
	ctx context.Context,
	bountyID, completerID string,
	location *geoutil.Point,
	afterDetections []detection.Detection,
	afterImage string,
) (*entity.Bounty, error) {
	unlock := m.locks.Lock(bountyLockKey(bountyID))
	defer unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	bounty, err := m.getForUpdate(ctx, bountyID)
	if err != nil {
		return nil, err
	}

	if err := CheckCompletable(bounty, completerID, location); err != nil {
		if errorx.IsSoft(err) {
			return bounty, err
		}

		return nil, err
	}

	if remaining, clean := m.policy.GateForCompletion(afterDetections); !clean {
		return nil, errorx.New(errorx.WasteStillPresent,
			"%d waste item(s) are still visible in the photo", remaining)
	}

	completedAt := sql.NullTime{Time: m.now(), Valid: true}
	err = m.bountyRepo.Complete(ctx, bounty.ID, afterImage, completedAt)
	if errors.Is(err, repository.ErrStaleBounty) {
		return nil, errorx.New(errorx.InvalidState, "Bounty changed while completing")
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete bounty: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit completion of bounty: %v", err)
		return nil, errorx.Unknown
	}

	bounty.AfterImage = sql.NullString{String: afterImage, Valid: true}
	bounty.CompletedAt = completedAt
	bounty.Status = entity.BountyCompleted

	common.IncBountyTransition(common.TransitionComplete)
	m.notify(ctx, client.EventBountyCompleted,
		fmt.Sprintf("Your waste report %s has been cleaned. You earned %d points.", bounty.ID, bounty.PointsReporter),
		bounty.ReporterID)
	m.notify(ctx, client.EventBountyCompleted,
		fmt.Sprintf("Cleanup of %s is verified. You earned %d points.", bounty.ID, bounty.PointsCleaner),
		bounty.CleanerID.String)

	return bounty, nil
}

// CheckCompletable runs the checks of Complete that do not need the after
// photo, in the same order. It does not lock anything.
func CheckCompletable(bounty *entity.Bounty, completerID string, location *geoutil.Point) error {
	if !bounty.CleanerID.Valid || bounty.CleanerID.String != completerID {
		return errorx.New(errorx.NotOwner, "Only the cleaner who claimed this bounty can complete it")
	}

	if bounty.Status == entity.BountyCompleted {
		return errorx.New(errorx.AlreadyCompleted, "Bounty is already completed")
	}

	if bounty.Status != entity.BountyClaimed {
		return errorx.New(errorx.InvalidState, "Bounty is %s", bounty.Status)
	}

	return checkProximity(bounty, location)
}

// CheckClaimable runs the checks of Claim without locking.
func CheckClaimable(bounty *entity.Bounty, claimerID string, location *geoutil.Point) error {
	if bounty.ReporterID == claimerID {
		return errorx.New(errorx.SelfClaim, "You cannot claim your own report")
	}

	if bounty.Status != entity.BountyOpen {
		return errorx.New(errorx.InvalidState, "Bounty is already %s", bounty.Status)
	}

	return checkProximity(bounty, location)
}

func checkProximity(bounty *entity.Bounty, location *geoutil.Point) error {
	if location == nil || !bounty.HasLocation() {
		return errorx.New(errorx.LocationMissing, "Location is required")
	}

	target := geoutil.Point{Lat: bounty.Lat.Float64, Lon: bounty.Lon.Float64}
	if !geoutil.Within(*location, target, config.ProximityRadiusMeters) {
		return errorx.New(errorx.TooFar, "You are %.0f m away, come within %.0f m of the location",
			geoutil.DistanceBetween(*location, target), config.ProximityRadiusMeters)
	}

	return nil
}

func (m *BountyMachine) getForUpdate(ctx context.Context, id string) (*entity.Bounty, error) {
	bounty, err := m.bountyRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot get bounty: %v", err)
		return nil, errorx.Unknown
	}

	return bounty, nil
}

func (m *BountyMachine) notify(ctx context.Context, eventType, message, userID string) {
	if userID == "" {
		return
	}

	user, err := m.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get user %s to notify: %v", userID, err)
		return
	}

	m.notifier.Notify(ctx, client.NotificationEvent{
		Type:    eventType,
		Phone:   user.Phone,
		Message: message,
	})
}
