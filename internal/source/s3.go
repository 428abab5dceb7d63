package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/arbazmubasher1/RidersDashboard/internal/models"
)

// S3Source fetches a CSV or XLSX export object and delegates decoding by
// file extension.
type S3Source struct {
	Ref models.SourceRef
}

func (s *S3Source) Fetch(ctx context.Context) (Table, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(s.Ref.Region))
	if err != nil {
		return Table{}, unavailable(s.Ref, fmt.Errorf("unable to load SDK config: %w", err))
	}

	client := s3.NewFromConfig(cfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Ref.Bucket),
		Key:    aws.String(s.Ref.Path),
	})
	if err != nil {
		return Table{}, unavailable(s.Ref, fmt.Errorf("fetching s3://%s/%s: %w", s.Ref.Bucket, s.Ref.Path, err))
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Table{}, unavailable(s.Ref, fmt.Errorf("reading object body: %w", err))
	}

	if strings.EqualFold(filepath.Ext(s.Ref.Path), ".xlsx") {
		return readExcel(bytes.NewReader(body), s.Ref)
	}
	return readCSV(bytes.NewReader(body), s.Ref)
}
