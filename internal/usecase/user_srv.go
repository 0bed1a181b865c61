package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/internal/dto/request"
	"healthcare-booking/internal/dto/response"
	"healthcare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, actorID uuid.UUID, userID string) error
}

type userService struct {
	userRepo  repository.UserRepository
	sessions  repository.SessionRepository
	denylist  TokenDenylist
	accessTTL time.Duration
	events    Emitter
	now       func() time.Time
	log       *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, deps Dependencies, events Emitter, log *zap.Logger) UserService {
	return &userService{
		userRepo:  repo.User,
		sessions:  repo.Session,
		denylist:  deps.Denylist,
		accessTTL: time.Duration(config.JWT.AccessExpiryMinutes) * time.Minute,
		events:    events,
		now:       deps.Now,
		log:       log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.findActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Load user
	user, err := us.findActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. Apply changes
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := entity.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, newError(ErrValidation, "invalid date of birth")
		}
		if dob.After(us.now()) {
			return nil, newError(ErrValidation, "date of birth cannot be in the future")
		}
		user.DateOfBirth = &dob
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		user.EmergencyContact = *req.EmergencyContact
	}
	if req.Insurance != nil {
		user.Insurance = *req.Insurance
	}

	// Medical metadata only applies to patients.
	if req.Allergies != nil || req.Medications != nil || req.MedicalHistory != nil {
		if user.Role != entity.RolePatient {
			return nil, newError(ErrValidation, "medical information can only be set on patient accounts")
		}
		if req.Allergies != nil {
			user.Medical.Allergies = req.Allergies
		}
		if req.Medications != nil {
			user.Medical.Medications = req.Medications
		}
		if req.MedicalHistory != nil {
			user.Medical.MedicalHistory = req.MedicalHistory
		}
	}

	now := us.now()
	user.UpdatedAt = now

	// 4. Save
	if err := us.userRepo.Update(ctx, user); err != nil {
		us.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fromRepository(err, "update user")
	}

	us.events.Emit(ctx, Event{
		Type:        EventProfileUpdated,
		RecipientID: user.ID,
		Title:       "Profile Updated",
		Message:     "Your profile information has been updated successfully.",
		Category:    entity.NotificationAccount,
		OccurredAt:  now,
	})

	us.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("find users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("total_pages", utils.CalculateTotalPages(total, req.Limit())),
	)

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit(), total), nil
}

func (us *userService) DeleteUser(ctx context.Context, actorID uuid.UUID, userID string) error {
	id, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if id == actorID {
		return newError(ErrPolicy, "you cannot deactivate your own account")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for delete", zap.Error(err), zap.String("id", userID))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return newError(ErrNotFound, "user not found")
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("id", userID))
		return fromRepository(err, "delete user")
	}

	// Sign the user out everywhere: refresh sessions and live access tokens.
	if err := us.sessions.RevokeAllUserSessions(ctx, id); err != nil {
		us.log.Error("Failed to revoke sessions", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("revoke sessions: %w", err)
	}
	if us.denylist != nil {
		if err := us.denylist.Deny(ctx, utils.UserDenyKey(id.String()), us.accessTTL); err != nil {
			us.log.Error("Failed to deny user tokens", zap.Error(err), zap.String("user_id", userID))
			return fmt.Errorf("deny user tokens: %w", err)
		}
	}

	us.log.Info("User deactivated", zap.String("user_id", id.String()))
	return nil
}

func (us *userService) findActive(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, newError(ErrNotFound, "user not found")
	}
	return user, nil
}

// parseID parses a path identifier.
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newError(ErrValidation, "invalid %s ID", what)
	}
	return id, nil
}
