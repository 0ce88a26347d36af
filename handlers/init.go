package handlers

import (
	"github.com/sirupsen/logrus"

	"vod-site/pipeline"
	"vod-site/videos"
	"vod-site/views"
)

var log *logrus.Logger
var videoRepo videos.Repository
var viewRepo views.Repository
var pipe *pipeline.Pipeline

func Init(logger *logrus.Logger, repo videos.Repository, vr views.Repository, p *pipeline.Pipeline) error {
	log = logger.WithFields(logrus.Fields{
		"component": "handlers",
	}).Logger
	videoRepo = repo
	viewRepo = vr
	pipe = p
	return nil
}

func Fini() {}
