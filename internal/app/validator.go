package app

import (
	"filewarden/internal/config"
	apperrors "filewarden/internal/errors"
	"filewarden/internal/logger"
	"filewarden/internal/storage"

	"golang.org/x/sys/unix"
)

// minFreeBytes is the free space required on the workspace volume before a
// scan is allowed to write manifest entries.
const minFreeBytes = 50 * 1024 * 1024

type validation struct {
	name      string
	operation string
	category  apperrors.ErrorCategory
	fn        func() error
}

// WorkspaceValidator encapsulates workspace validation logic.
type WorkspaceValidator struct {
	config  *config.Config
	storage storage.Storage
	logger  logger.Logger
}

// NewWorkspaceValidator constructs a validator instance.
func NewWorkspaceValidator(cfg *config.Config, store storage.Storage, log logger.Logger) *WorkspaceValidator {
	return &WorkspaceValidator{
		config:  cfg,
		storage: store,
		logger:  log,
	}
}

// Validate executes the core workspace checks.
func (v *WorkspaceValidator) Validate() error {
	return v.runValidations([]validation{
		{"Workspace", "validator.validateWorkspace", apperrors.ErrCategoryValidation, v.validateWorkspace},
		{"Permissions", "validator.validatePermissions", apperrors.ErrCategoryStorage, v.validatePermissions},
		{"Disk Space", "validator.validateDiskSpace", apperrors.ErrCategorySystem, v.validateDiskSpace},
	})
}

func (v *WorkspaceValidator) runValidations(checks []validation) error {
	for _, check := range checks {
		if err := check.fn(); err != nil {
			if appErr, ok := apperrors.As(err); ok {
				return appErr
			}
			return v.wrapError(check.category, check.operation, check.name+" validation failed", err, nil)
		}
	}
	return nil
}

func (v *WorkspaceValidator) validateWorkspace() error {
	workspace := v.config.Workspace

	if !v.storage.Exists(workspace) {
		return v.wrapError(
			apperrors.ErrCategoryValidation,
			"validator.validateWorkspace",
			"workspace does not exist",
			nil,
			apperrors.Metadata{"workspace": workspace},
		)
	}

	isDir, err := v.storage.IsDirectory(workspace)
	if err != nil {
		return v.wrapError(
			apperrors.ErrCategoryStorage,
			"validator.validateWorkspace",
			"failed to inspect workspace",
			err,
			apperrors.Metadata{"workspace": workspace},
		)
	}
	if !isDir {
		return v.wrapError(
			apperrors.ErrCategoryValidation,
			"validator.validateWorkspace",
			"workspace is not a directory",
			nil,
			apperrors.Metadata{"workspace": workspace},
		)
	}

	v.logger.Debug("workspace located at %s", workspace)
	return nil
}

func (v *WorkspaceValidator) validatePermissions() error {
	workspace := v.config.Workspace

	if !v.storage.IsDirectoryReadable(workspace) {
		return v.wrapError(
			apperrors.ErrCategoryStorage,
			"validator.validatePermissions",
			"workspace is not readable",
			nil,
			apperrors.Metadata{"workspace": workspace},
		)
	}

	if !v.storage.IsDirectoryWritable(workspace) {
		return v.wrapError(
			apperrors.ErrCategoryStorage,
			"validator.validatePermissions",
			"workspace is not writable",
			nil,
			apperrors.Metadata{"workspace": workspace},
		)
	}

	return nil
}

func (v *WorkspaceValidator) validateDiskSpace() error {
	var stat unix.Statfs_t
	if err := unix.Statfs(v.config.Workspace, &stat); err != nil {
		return v.wrapError(
			apperrors.ErrCategorySystem,
			"validator.validateDiskSpace",
			"failed to query free disk space",
			err,
			apperrors.Metadata{"workspace": v.config.Workspace},
		)
	}

	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return v.wrapError(
			apperrors.ErrCategorySystem,
			"validator.validateDiskSpace",
			"insufficient free disk space",
			nil,
			apperrors.Metadata{"free_bytes": free, "required_bytes": uint64(minFreeBytes)},
		)
	}

	v.logger.Debug("free disk space: %d bytes", free)
	return nil
}

func (v *WorkspaceValidator) wrapError(category apperrors.ErrorCategory, operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	var code string
	switch category {
	case apperrors.ErrCategoryStorage:
		code = apperrors.CodeStorageGeneric
	case apperrors.ErrCategorySystem:
		code = apperrors.CodeSystemGeneric
	default:
		code = apperrors.CodeValidationGeneric
	}

	appErr := apperrors.New(code, category, message, err).
		WithModule("app.validator").
		WithOperation(operation)
	if metadata != nil {
		appErr.WithFields(metadata)
	}
	return appErr
}
