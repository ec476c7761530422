package game

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler 把回调排入调度循环执行
// 倒计时协程自身绝不直接改对局状态
type Scheduler interface {
	Post(fn func())
}

// Countdown 一个可取消的秒级倒计时
// 每个刻度把回调投递到调度循环；Stop 之后已投递未执行的回调会被丢弃，
// 从调度循环视角看等价于同步清除定时器
type Countdown struct {
	done     chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

// StartCountdown 启动倒计时
// interval: 刻度间隔；ticks: 总刻度数；onTick 在第 1..ticks-1 个刻度触发，
// 第 ticks 个刻度触发 onExpire。两者都在调度循环内执行。
func StartCountdown(sched Scheduler, interval time.Duration, ticks int, onTick func(n int), onExpire func()) *Countdown {
	c := &Countdown{done: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for n := 1; n <= ticks; n++ {
			select {
			case <-c.done:
				return
			case <-ticker.C:
				tick := n
				if tick == ticks {
					sched.Post(func() {
						if c.Stopped() {
							return
						}
						c.Stop()
						onExpire()
					})
					return
				}
				sched.Post(func() {
					if c.Stopped() {
						return
					}
					onTick(tick)
				})
			}
		}
	}()

	return c
}

// Stop 取消倒计时，幂等
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.done)
	})
}

// Stopped 是否已取消或已到期
func (c *Countdown) Stopped() bool {
	return c.stopped.Load()
}
