package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/AhmedZafar5533/fitness-sub000/models"
	"github.com/AhmedZafar5533/fitness-sub000/utils"
)

// RekognitionService classifies meal photos. Detected labels are run
// through the key normalizer against the food catalog; the first label with
// a catalog hit wins.
type RekognitionService struct {
	client  *rekognition.Client
	catalog *FoodCatalog
}

func NewRekognitionService(catalog *FoodCatalog) (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{
		client:  rekognition.NewFromConfig(cfg),
		catalog: catalog,
	}, nil
}

// RecognizeLabels returns the top labels for a base64-encoded image
// ("data:image/...;base64,<data>").
func (r *RekognitionService) RecognizeLabels(ctx context.Context, base64Img string) ([]string, error) {
	if !strings.HasPrefix(base64Img, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	idx := strings.Index(base64Img, ",")
	if idx < 0 {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, *l.Name)
	}
	return labels, nil
}

// RecognizeFood classifies an image and resolves the labels against the
// food catalog. Falls back to the first label when nothing matches so the
// caller can still propose it (the validator decides its fate).
func (r *RekognitionService) RecognizeFood(ctx context.Context, base64Img string) (string, *models.FoodRecord, error) {
	if err := r.catalog.Load(); err != nil {
		return "", nil, err
	}
	labels, err := r.RecognizeLabels(ctx, base64Img)
	if err != nil {
		return "", nil, err
	}
	if len(labels) == 0 {
		return "", nil, errors.New("no labels detected")
	}

	for _, label := range labels {
		if food, ok := r.catalog.Lookup(utils.NormalizeFoodKey(label)); ok {
			return label, food, nil
		}
	}
	return labels[0], nil, nil
}
