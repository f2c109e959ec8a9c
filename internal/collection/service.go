package collection

import (
	"context"
	"errors"

	"github.com/unkn0wn-root/pmgen/internal/postman"
)

const (
	errSourceNotConfigured    = "collection: source not configured"
	errAssemblerNotConfigured = "collection: assembler not configured"
	errWriterNotConfigured    = "collection: writer not configured"
)

// Service runs source -> assembler -> verifier -> writer. Verifier is optional.
type Service struct {
	Source    Source
	Assembler Assembler
	Verifier  Verifier
	Writer    DocumentWriter
}

func (s *Service) Build(ctx context.Context) (*postman.Collection, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.Source == nil {
		return nil, errors.New(errSourceNotConfigured)
	}
	if s.Assembler == nil {
		return nil, errors.New(errAssemblerNotConfigured)
	}

	groups, err := s.Source.Groups(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := s.Assembler.Assemble(ctx, groups)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.Verifier != nil {
		if err := s.Verifier.Verify(ctx, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (s *Service) Generate(
	ctx context.Context,
	outputPath string,
	opts WriterOptions,
) (*postman.Collection, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.Writer == nil {
		return nil, errors.New(errWriterNotConfigured)
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	c, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Writer.WriteDocument(ctx, c, outputPath, opts); err != nil {
		return nil, err
	}
	return c, ctx.Err()
}
