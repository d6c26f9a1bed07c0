package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"

	"vortex-go/internal/config"
	"vortex-go/internal/infra/database"
	"vortex-go/internal/model"
	"vortex-go/pkg/logger"
	"vortex-go/pkg/utils"

	"github.com/go-faker/faker/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seedPassword = "password"

// 填充测试数据：用户、视频、评论、动态、点赞、订阅、播放列表
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	userCount := flag.Int("users", 50, "number of users")
	videoCount := flag.Int("videos", 200, "number of videos")
	reset := flag.Bool("reset", false, "drop all tables before seeding")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	if *reset {
		if err := db.Migrator().DropTable(model.All()...); err != nil {
			logger.Fatal("Failed to drop tables", zap.Error(err))
		}
		logger.Info("Old tables dropped")
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	hashed, err := utils.HashPassword(seedPassword)
	if err != nil {
		logger.Fatal("Failed to hash password", zap.Error(err))
	}

	users := seedUsers(db, *userCount, hashed)
	videos := seedVideos(db, users, *videoCount)
	comments := seedComments(db, users, videos)
	tweets := seedTweets(db, users)
	seedLikes(db, users, videos, comments, tweets)
	seedSubscriptions(db, users)
	seedPlaylists(db, users, videos)

	logger.Info("Seeding completed",
		zap.Int("users", len(users)),
		zap.Int("videos", len(videos)),
		zap.Int("comments", len(comments)),
		zap.Int("tweets", len(tweets)),
		zap.String("password", seedPassword),
	)
}

func placeholder(kind string, i int) model.Asset {
	id := fmt.Sprintf("seed/%s-%d", kind, i)
	return model.Asset{PublicID: id, URL: "https://picsum.photos/seed/" + strings.ReplaceAll(id, "/", "-") + "/640/360"}
}

func pick(ids []int64) int64 {
	return ids[rand.Intn(len(ids))]
}

func seedUsers(db *gorm.DB, n int, hashed string) []int64 {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		// 加序号避免随机用户名重复
		name := fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), i)
		user := model.User{
			UserName: name,
			Email:    name + "@example.com",
			FullName: faker.Name(),
			Password: hashed,
			Avatar:   placeholder("avatar", i),
		}
		if err := db.Create(&user).Error; err != nil {
			logger.Warn("Failed to create user", zap.String("user_name", name), zap.Error(err))
			continue
		}
		ids = append(ids, user.ID)
	}
	logger.Info("Users created", zap.Int("count", len(ids)))
	return ids
}

func seedVideos(db *gorm.DB, users []int64, n int) []int64 {
	ids := make([]int64, 0, n)
	if len(users) == 0 {
		return ids
	}
	for i := 0; i < n; i++ {
		video := model.Video{
			OwnerID:     pick(users),
			VideoFile:   model.Asset{PublicID: fmt.Sprintf("seed/video-%d", i), URL: "https://test.com/video.mp4"},
			Thumbnail:   placeholder("thumbnail", i),
			Title:       faker.Sentence(),
			Description: faker.Paragraph(),
			Duration:    float64(30 + rand.Intn(1200)),
			Views:       int64(rand.Intn(10000)),
			IsPublished: rand.Intn(10) > 0,
		}
		if err := db.Create(&video).Error; err != nil {
			logger.Warn("Failed to create video", zap.Error(err))
			continue
		}
		ids = append(ids, video.ID)
	}
	logger.Info("Videos created", zap.Int("count", len(ids)))
	return ids
}

func seedComments(db *gorm.DB, users, videos []int64) []int64 {
	var ids []int64
	if len(users) == 0 || len(videos) == 0 {
		return ids
	}
	for i := 0; i < len(videos)*3; i++ {
		comment := model.Comment{VideoID: pick(videos), OwnerID: pick(users), Content: faker.Sentence()}
		if err := db.Create(&comment).Error; err == nil {
			ids = append(ids, comment.ID)
		}
	}
	logger.Info("Comments created", zap.Int("count", len(ids)))
	return ids
}

func seedTweets(db *gorm.DB, users []int64) []int64 {
	var ids []int64
	for _, owner := range users {
		for j := 0; j < 3; j++ {
			tweet := model.Tweet{OwnerID: owner, Content: faker.Sentence()}
			if err := db.Create(&tweet).Error; err == nil {
				ids = append(ids, tweet.ID)
			}
		}
	}
	logger.Info("Tweets created", zap.Int("count", len(ids)))
	return ids
}

// insertIgnore 唯一键冲突时什么都不做
func insertIgnore(db *gorm.DB, value interface{}) {
	db.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
}

func seedLikes(db *gorm.DB, users, videos, comments, tweets []int64) {
	if len(users) == 0 {
		return
	}
	for i := 0; i < len(videos)*5; i++ {
		insertIgnore(db, model.NewLike(model.LikeVideo, pick(videos), pick(users)))
	}
	for i := 0; i < len(comments) && len(comments) > 0; i++ {
		insertIgnore(db, model.NewLike(model.LikeComment, pick(comments), pick(users)))
	}
	for i := 0; i < len(tweets) && len(tweets) > 0; i++ {
		insertIgnore(db, model.NewLike(model.LikeTweet, pick(tweets), pick(users)))
	}
	logger.Info("Likes created")
}

func seedSubscriptions(db *gorm.DB, users []int64) {
	if len(users) < 2 {
		return
	}
	for i := 0; i < len(users)*4; i++ {
		subscriber, channel := pick(users), pick(users)
		if subscriber == channel {
			continue
		}
		insertIgnore(db, &model.Subscription{SubscriberID: subscriber, ChannelID: channel})
	}
	logger.Info("Subscriptions created")
}

func seedPlaylists(db *gorm.DB, users, videos []int64) {
	if len(videos) == 0 {
		return
	}
	for _, owner := range users {
		playlist := model.Playlist{OwnerID: owner, Name: faker.Word(), Description: faker.Sentence()}
		if err := db.Create(&playlist).Error; err != nil {
			continue
		}
		for j := 0; j < 5; j++ {
			insertIgnore(db, &model.PlaylistVideo{PlaylistID: playlist.ID, VideoID: pick(videos)})
		}
	}
	logger.Info("Playlists created")
}
