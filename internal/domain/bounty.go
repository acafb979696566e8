package domain

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/wastebounty/backend/internal/client"
	"github.com/wastebounty/backend/internal/common"
	"github.com/wastebounty/backend/internal/domain/detection"
	"github.com/wastebounty/backend/internal/domain/lifecycle"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/internal/repository"
	"github.com/wastebounty/backend/pkg/enum"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/geoutil"
	"github.com/wastebounty/backend/pkg/storage"
	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	beforePhotoPrefix = "before"
	afterPhotoPrefix  = "after"
	photoFormKey      = "image"
)

type BountyDomain interface {
	Create(context.Context, *model.CreateBountyRequest) (*model.CreateBountyResponse, error)
	Claim(context.Context, *model.ClaimBountyRequest) (*model.ClaimBountyResponse, error)
	Complete(context.Context, *model.CompleteBountyRequest) (*model.CompleteBountyResponse, error)
	Get(context.Context, *model.GetBountyRequest) (*model.GetBountyResponse, error)
	GetList(context.Context, *model.GetListBountyRequest) (*model.GetListBountyResponse, error)
	GetMyBounties(context.Context, *model.GetMyBountiesRequest) (*model.GetMyBountiesResponse, error)
}

type bountyDomain struct {
	bountyRepo  repository.BountyRepository
	machine     *lifecycle.BountyMachine
	classifier  client.DetectionClassifier
	fileStorage storage.Storage
}

func NewBountyDomain(
	bountyRepo repository.BountyRepository,
	machine *lifecycle.BountyMachine,
	classifier client.DetectionClassifier,
	fileStorage storage.Storage,
) BountyDomain {
	return &bountyDomain{
		bountyRepo:  bountyRepo,
		machine:     machine,
		classifier:  classifier,
		fileStorage: fileStorage,
	}
}

func (d *bountyDomain) Create(
	ctx context.Context, req *model.CreateBountyRequest,
) (*model.CreateBountyResponse, error) {
	reporterID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	location, err := parseFormLocation(req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}

	if location == nil {
		return nil, errorx.New(errorx.LocationMissing, "Location is required to report waste")
	}

	photo, err := common.UploadPhoto(ctx, d.fileStorage, photoFormKey, beforePhotoPrefix)
	if err != nil {
		return nil, err
	}

	detections, err := d.classify(ctx, photo.Url)
	if err != nil {
		return nil, err
	}

	bounty, err := d.machine.Create(ctx, reporterID, location, detections, photo.Url)
	if err != nil {
		return nil, err
	}

	resp := model.CreateBountyResponse(model.ConvertBounty(bounty))
	return &resp, nil
}

func (d *bountyDomain) Claim(
	ctx context.Context, req *model.ClaimBountyRequest,
) (*model.ClaimBountyResponse, error) {
	claimerID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	location, err := toLocation(req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}

	bounty, err := d.machine.Claim(ctx, req.BountyID, claimerID, location)
	if err != nil {
		return nil, err
	}

	resp := model.ClaimBountyResponse(model.ConvertBounty(bounty))
	return &resp, nil
}

// Complete validates everything it can before uploading and classifying the
// after photo, so a wrong caller or position costs no upload. The machine
// repeats the checks under lock.
func (d *bountyDomain) Complete(
	ctx context.Context, req *model.CompleteBountyRequest,
) (*model.CompleteBountyResponse, error) {
	completerID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	location, err := parseFormLocation(req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}

	bounty, err := d.getBounty(ctx, req.BountyID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.CheckCompletable(bounty, completerID, location); err != nil {
		if errorx.IsSoft(err) {
			resp := model.CompleteBountyResponse(model.ConvertBounty(bounty))
			return &resp, err
		}

		return nil, err
	}

	photo, err := common.UploadPhoto(ctx, d.fileStorage, photoFormKey, afterPhotoPrefix)
	if err != nil {
		return nil, err
	}

	detections, err := d.classify(ctx, photo.Url)
	if err != nil {
		return nil, err
	}

	bounty, err = d.machine.Complete(ctx, bounty.ID, completerID, location, detections, photo.Url)
	if err != nil {
		if errorx.IsSoft(err) && bounty != nil {
			resp := model.CompleteBountyResponse(model.ConvertBounty(bounty))
			return &resp, err
		}

		return nil, err
	}

	resp := model.CompleteBountyResponse(model.ConvertBounty(bounty))
	return &resp, nil
}

func (d *bountyDomain) Get(
	ctx context.Context, req *model.GetBountyRequest,
) (*model.GetBountyResponse, error) {
	bounty, err := d.getBounty(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetBountyResponse(model.ConvertBounty(bounty))
	return &resp, nil
}

// GetList returns the newest bounties first. With a reference point and a
// radius it keeps only those within the radius, nearest first.
func (d *bountyDomain) GetList(
	ctx context.Context, req *model.GetListBountyRequest,
) (*model.GetListBountyResponse, error) {
	limit, err := normalizeLimit(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.BountyFilter{}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.BountyStatus](strings.ToUpper(req.Status))
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
		filter.Status = []entity.BountyStatus{status}
	}

	center, err := toLocation(req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}

	if req.Radius < 0 {
		return nil, errorx.New(errorx.BadRequest, "Radius must be positive")
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	if center != nil && req.Radius > 0 {
		sw, ne := geoutil.BoundingBox(*center, req.Radius)
		filter.SouthWest, filter.NorthEast = &sw, &ne
	} else {
		center = nil
	}

	if center != nil {
		return d.getNearbyList(ctx, filter, *center, req.Radius, req.Offset, limit)
	}

	bounties, err := d.bountyRepo.GetList(ctx, filter, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of bounties: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Bounty, 0, len(bounties))
	for i := range bounties {
		result = append(result, model.ConvertBounty(&bounties[i]))
	}

	return &model.GetListBountyResponse{Bounties: result}, nil
}

// getNearbyList pages over the bounties inside the radius, nearest first.
// The bounding box narrows the scan, the exact distance decides membership.
func (d *bountyDomain) getNearbyList(
	ctx context.Context,
	filter repository.BountyFilter,
	center geoutil.Point,
	radius float64,
	offset, limit int,
) (*model.GetListBountyResponse, error) {
	batch := xcontext.Configs(ctx).ApiServer.MaxLimit

	matches := []model.Bounty{}
	for scanned := 0; ; scanned += batch {
		bounties, err := d.bountyRepo.GetList(ctx, filter, scanned, batch)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get list of nearby bounties: %v", err)
			return nil, errorx.Unknown
		}

		for i := range bounties {
			if !bounties[i].HasLocation() {
				continue
			}

			distance := geoutil.Distance(center.Lat, center.Lon,
				bounties[i].Lat.Float64, bounties[i].Lon.Float64)
			if distance > radius {
				continue
			}

			b := model.ConvertBounty(&bounties[i])
			b.DistanceMeters = &distance
			matches = append(matches, b)
		}

		if len(bounties) < batch {
			break
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return *matches[i].DistanceMeters < *matches[j].DistanceMeters
	})

	if offset >= len(matches) {
		return &model.GetListBountyResponse{Bounties: []model.Bounty{}}, nil
	}

	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}

	return &model.GetListBountyResponse{Bounties: matches[offset:end]}, nil
}

func (d *bountyDomain) GetMyBounties(
	ctx context.Context, req *model.GetMyBountiesRequest,
) (*model.GetMyBountiesResponse, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	limit, err := normalizeLimit(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.BountyFilter{}
	switch strings.ToLower(req.Role) {
	case "", "reporter":
		filter.ReporterID = userID
	case "cleaner":
		filter.CleanerID = userID
	default:
		return nil, errorx.New(errorx.BadRequest, "Role must be reporter or cleaner")
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.BountyStatus](strings.ToUpper(req.Status))
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
		filter.Status = []entity.BountyStatus{status}
	}

	bounties, err := d.bountyRepo.GetList(ctx, filter, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of bounties: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Bounty, 0, len(bounties))
	for i := range bounties {
		result = append(result, model.ConvertBounty(&bounties[i]))
	}

	return &model.GetMyBountiesResponse{Bounties: result}, nil
}

func (d *bountyDomain) getBounty(ctx context.Context, id string) (*entity.Bounty, error) {
	bounty, err := d.bountyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot get bounty: %v", err)
		return nil, errorx.Unknown
	}

	return bounty, nil
}

// classify must never run inside a transaction.
func (d *bountyDomain) classify(ctx context.Context, imageURL string) ([]detection.Detection, error) {
	detections, err := d.classifier.Classify(ctx, imageURL)
	if err != nil {
		if errorx.Is(err, errorx.ClassificationUnavailable) {
			xcontext.Logger(ctx).Errorf("Classification unavailable for %s: %v", imageURL, err)
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot classify photo: %v", err)
		return nil, errorx.Unknown
	}

	return detections, nil
}
