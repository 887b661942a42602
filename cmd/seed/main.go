// 开发环境数据填充工具，通过 HTTP API 造数据。
// 依赖跳过邮箱验证的测试配置，生产环境不要运行。
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	baseURL   = flag.String("base-url", "http://localhost:8080", "服务地址")
	userCount = flag.Int("users", 10, "创建的用户数")
	postCount = flag.Int("posts", 5, "每个用户的帖子数")
)

type seedUser struct {
	email    string
	username string
	password string
	token    string
	postIDs  []int
}

func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	client := &http.Client{Timeout: 10 * time.Second}

	var users []*seedUser
	for i := 0; i < *userCount; i++ {
		u := &seedUser{
			email:    gofakeit.Email(),
			username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			password: gofakeit.Password(true, true, true, false, false, 12),
		}
		if err := registerUser(client, u); err != nil {
			log.Printf("创建用户失败 %s: %v", u.email, err)
			continue
		}
		users = append(users, u)
		log.Printf("用户已创建: %s", u.username)
	}

	postTypes := []string{"text", "media", "link"}
	for _, u := range users {
		for i := 0; i < *postCount; i++ {
			postType := postTypes[rand.Intn(len(postTypes))]
			body := map[string]interface{}{
				"title":     gofakeit.Sentence(6),
				"post_type": postType,
				"content":   gofakeit.Paragraph(1, 3, 10, " "),
				"tags":      []string{gofakeit.Hobby(), gofakeit.Hobby()},
			}
			switch postType {
			case "media":
				body["media_url"] = gofakeit.URL()
			case "link":
				body["link"] = gofakeit.URL()
			}

			var resp struct {
				Data struct {
					ID int `json:"id"`
				} `json:"data"`
			}
			if err := post(client, "/api/posts", u.token, body, &resp); err != nil {
				log.Printf("创建帖子失败: %v", err)
				continue
			}
			u.postIDs = append(u.postIDs, resp.Data.ID)
		}
	}

	// 随机互动：关注、点赞、评论、分享
	for _, u := range users {
		for _, other := range users {
			if u == other || rand.Intn(3) != 0 {
				continue
			}
			for _, postID := range other.postIDs {
				switch rand.Intn(4) {
				case 0:
					_ = post(client, fmt.Sprintf("/api/posts/%d/like", postID), u.token, nil, nil)
				case 1:
					_ = post(client, fmt.Sprintf("/api/posts/%d/comments", postID), u.token,
						map[string]interface{}{"content": gofakeit.Sentence(10)}, nil)
				case 2:
					_ = post(client, fmt.Sprintf("/api/posts/%d/share", postID), u.token, nil, nil)
				}
			}
		}
	}

	log.Printf("填充完成：%d 个用户", len(users))
}

func registerUser(client *http.Client, u *seedUser) error {
	if err := post(client, "/api/auth/send-otp", "", map[string]interface{}{"email": u.email}, nil); err != nil {
		return err
	}

	// 调试模式下验证码固定为 000000
	if err := post(client, "/api/auth/verify-otp", "", map[string]interface{}{
		"email": u.email, "code": "000000",
	}, nil); err != nil {
		return err
	}

	if err := post(client, "/api/auth/set-credentials", "", map[string]interface{}{
		"email": u.email, "username": u.username, "password": u.password,
	}, nil); err != nil {
		return err
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := post(client, "/api/auth/login", "", map[string]interface{}{
		"identifier": u.email, "password": u.password,
	}, &resp); err != nil {
		return err
	}
	u.token = resp.Data.Token
	return nil
}

func post(client *http.Client, path, token string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(http.MethodPost, *baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s 返回 %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
