package event

import "testing"

type countingListener struct {
	received []Event
}

func (l *countingListener) OnEvent(e Event) {
	l.received = append(l.received, e)
}

func TestDispatcher(t *testing.T) {
	t.Run("只通知对应类型的订阅者", func(t *testing.T) {
		d := NewDispatcher()
		defeated := &countingListener{}
		reached := &countingListener{}
		d.Subscribe(UnitDefeated, defeated)
		d.Subscribe(UnitReachedEnd, reached)

		d.Dispatch(Event{Type: UnitDefeated, Data: UnitEvent{UnitID: 3, Reward: 25}})

		if len(defeated.received) != 1 {
			t.Fatalf("Expected 1 defeated event, got %d", len(defeated.received))
		}
		if len(reached.received) != 0 {
			t.Errorf("Expected 0 reached events, got %d", len(reached.received))
		}
		payload, ok := defeated.received[0].Data.(UnitEvent)
		if !ok || payload.UnitID != 3 || payload.Reward != 25 {
			t.Errorf("Unexpected payload %+v", defeated.received[0].Data)
		}
	})

	t.Run("按订阅顺序同步调用", func(t *testing.T) {
		d := NewDispatcher()
		var order []int
		d.SubscribeFunc(AttackOccurred, func(Event) { order = append(order, 1) })
		d.SubscribeFunc(AttackOccurred, func(Event) { order = append(order, 2) })

		d.Dispatch(Event{Type: AttackOccurred})
		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("Expected [1 2], got %v", order)
		}
	})

	t.Run("取消订阅", func(t *testing.T) {
		d := NewDispatcher()
		l := &countingListener{}
		sub := d.Subscribe(GameOver, l)
		d.Unsubscribe(sub)
		d.Dispatch(Event{Type: GameOver})
		if len(l.received) != 0 {
			t.Errorf("Expected no events after unsubscribe, got %d", len(l.received))
		}
	})

	t.Run("取消函数订阅只影响自己", func(t *testing.T) {
		d := NewDispatcher()
		var first, second int
		sub := d.SubscribeFunc(WaveCompleted, func(Event) { first++ })
		d.SubscribeFunc(WaveCompleted, func(Event) { second++ })

		d.Unsubscribe(sub)
		d.Unsubscribe(sub) // 重复取消无效果
		d.Unsubscribe(Subscription{})
		d.Dispatch(Event{Type: WaveCompleted})

		if first != 0 || second != 1 {
			t.Errorf("Expected first=0 second=1, got first=%d second=%d", first, second)
		}
	})

	t.Run("回调中取消订阅", func(t *testing.T) {
		d := NewDispatcher()
		var calls []string
		var sub Subscription
		sub = d.SubscribeFunc(GameOver, func(Event) {
			calls = append(calls, "once")
			d.Unsubscribe(sub)
		})
		d.SubscribeFunc(GameOver, func(Event) { calls = append(calls, "always") })

		d.Dispatch(Event{Type: GameOver})
		d.Dispatch(Event{Type: GameOver})

		want := []string{"once", "always", "always"}
		if len(calls) != len(want) {
			t.Fatalf("Expected %v, got %v", want, calls)
		}
		for i := range want {
			if calls[i] != want[i] {
				t.Errorf("Expected %v, got %v", want, calls)
				break
			}
		}
	})

	t.Run("nil 分发器静默忽略", func(t *testing.T) {
		var d *Dispatcher
		d.Dispatch(Event{Type: WaveCompleted})
	})
}
