package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// RunPurgeBatch deletes one batch of descriptors older than the configured
// retention window.
func (s *DescriptorService) RunPurgeBatch(ctx context.Context) error {
	if s.descriptorsCfg.Retention <= 0 {
		return fmt.Errorf("%w: retention must be positive", ErrInvalidRequest)
	}

	cutoff := time.Now().UTC().Add(-s.descriptorsCfg.Retention)
	deleted, err := s.descriptorRepo.DeleteCreatedBefore(ctx, cutoff, s.batchSize())
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"cutoff":  cutoff.Format(time.RFC3339),
		"deleted": deleted,
	}).Info("Descriptors purged")

	return nil
}
