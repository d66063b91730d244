package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
)

const IDCookie = "sid"

// RedisStore keeps sessions server side under <prefix>:<id>; the browser only
// holds the opaque id.
type RedisStore struct {
	client rueidis.Client
	prefix string
	opts   CookieOptions
}

func NewRedisStore(client rueidis.Client, prefix string, opts CookieOptions) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		opts:   opts,
	}
}

func (r *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *RedisStore) Load(c echo.Context) (*Session, error) {
	sid, err := c.Cookie(IDCookie)
	if err != nil || sid.Value == "" {
		return &Session{}, nil
	}

	ctx := c.Request().Context()
	cmd := r.client.B().Get().Key(r.key(sid.Value)).Build()
	raw, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return &Session{}, nil
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return &Session{}, nil
	}
	sess.ID = sid.Value

	return &sess, nil
}

func (r *RedisStore) Save(c echo.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	ttl := r.opts.ttl()
	ctx := c.Request().Context()
	cmd := r.client.B().Set().Key(r.key(sess.ID)).Value(string(raw)).ExSeconds(int64(ttl / time.Second)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return err
	}

	c.SetCookie(r.opts.cookie(IDCookie, sess.ID, int(ttl/time.Second)))
	return nil
}

func (r *RedisStore) Clear(c echo.Context, sess *Session) error {
	if sess.ID != "" {
		ctx := c.Request().Context()
		if err := r.client.Do(ctx, r.client.B().Del().Key(r.key(sess.ID)).Build()).Error(); err != nil {
			return err
		}
	}

	c.SetCookie(r.opts.cookie(IDCookie, "", -1))
	sess.Clear()
	return nil
}
