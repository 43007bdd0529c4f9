package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"cpusched/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const reportPrefix = "reports/"

// S3Client  represents info about Amazon S3 Client used for exporting run reports
type S3Client struct {
	bucketName string
	region     string
	ctx        context.Context
	s3Logger   *zap.Logger
	s3Client   *s3.Client
}

// NewS3Client returns S3Client
func NewS3Client(ctx context.Context, accessKey, secretKey, bucket, region string, logger *zap.Logger) (*S3Client, error) {
	creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
	sdkConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(region), config.WithCredentialsProvider(creds))
	if err != nil {
		logger.Error("failed to load sdk config", zap.Error(err))
		return nil, err
	}
	s3Client := s3.NewFromConfig(sdkConfig)
	return &S3Client{
		bucketName: bucket,
		region:     region,
		ctx:        ctx,
		s3Logger:   logger,
		s3Client:   s3Client,
	}, nil
}

// ReportKey returns the object key of a run report
func ReportKey(runID string) string {
	return reportPrefix + runID + ".json"
}

// UploadReport stores the JSON report of a run
func (s *S3Client) UploadReport(run *domain.ScheduleRun) error {
	body, err := json.Marshal(run)
	if err != nil {
		s.s3Logger.Error("failed to marshal report", zap.Error(err), zap.String("run_id", run.RunID))
		return err
	}
	_, err = s.s3Client.PutObject(s.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(ReportKey(run.RunID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.s3Logger.Error("failed to put object", zap.Error(err), zap.String("run_id", run.RunID))
		return err
	}
	s.s3Logger.Debug("uploaded report", zap.String("run_id", run.RunID))
	return nil
}

// DownloadReport reads back the JSON report of a run
func (s *S3Client) DownloadReport(runID string) (*domain.ScheduleRun, error) {
	result, err := s.s3Client.GetObject(s.ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(ReportKey(runID)),
	})
	if err != nil {
		s.s3Logger.Error("failed to get object", zap.Error(err), zap.String("run_id", runID))
		return nil, err
	}
	defer result.Body.Close()
	body, err := io.ReadAll(result.Body)
	if err != nil {
		s.s3Logger.Error("failed to read all body", zap.Error(err))
		return nil, err
	}
	run := &domain.ScheduleRun{}
	if err := json.Unmarshal(body, run); err != nil {
		s.s3Logger.Error("failed to unmarshal report", zap.Error(err))
		return nil, err
	}
	return run, nil
}

// ListReports returns the run ids with a stored report
func (s *S3Client) ListReports() ([]string, error) {
	runIDs := make([]string, 0)
	result, err := s.s3Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(reportPrefix),
	})
	if err != nil {
		s.s3Logger.Error("failed to list objects", zap.Error(err))
		return nil, err
	}
	for _, object := range result.Contents {
		runIDs = append(runIDs, strings.TrimSuffix(strings.TrimPrefix(*object.Key, reportPrefix), ".json"))
	}
	return runIDs, nil
}

// DeleteReport deletes the report of a run
func (s *S3Client) DeleteReport(runID string) error {
	_, err := s.s3Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(ReportKey(runID)),
	})
	if err != nil {
		s.s3Logger.Error("failed to delete report", zap.Error(err), zap.String("run_id", runID))
		return err
	}
	return nil
}
