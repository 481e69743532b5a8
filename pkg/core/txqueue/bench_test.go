package txqueue

import (
	"testing"

	"github.com/Th-ium/ThiumCore/internal/random"
	"github.com/Th-ium/ThiumCore/pkg/config"
	"github.com/Th-ium/ThiumCore/pkg/core/transaction"
	"github.com/Th-ium/ThiumCore/pkg/util"
)

const (
	benchQueueSize = 10000
)

func BenchmarkQueue(b *testing.B) {
	ls := newLedgerStub()
	ls.defaultBalance = 100_0000_0000
	ls.header.MaxTxSetSizeOps = benchQueueSize

	one := random.Uint160()
	txesOne := make([]*transaction.Transaction, benchQueueSize)
	for i := range txesOne {
		txesOne[i] = transaction.New(one, int64(i+1), 1, 100)
	}
	txesMulti := make([]*transaction.Transaction, benchQueueSize)
	for i := range txesMulti {
		acc := util.Uint160{1, 2, 3, byte(i % 256), byte(i / 256)}
		txesMulti[i] = transaction.New(acc, 1, 1, 100)
	}
	txesDeep := make([]*transaction.Transaction, benchQueueSize)
	for i := range txesDeep {
		acc := util.Uint160{1, 2, 3, byte(i % 100)}
		txesDeep[i] = transaction.New(acc, int64(i/100+1), 1, 100)
	}

	senders := make(map[string][]*transaction.Transaction)
	senders["one account"] = txesOne
	senders["many accounts"] = txesMulti
	senders["many accounts, deep queues"] = txesDeep
	for name, txes := range senders {
		b.Run(name, func(b *testing.B) {
			q := New(config.QueueConfiguration{
				PendingDepth:         4,
				BanDepth:             10,
				PoolLedgerMultiplier: 1,
			}, ls, nil, false)
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				for j := range txes {
					if q.Add(txes[j]) != AddPending {
						b.Fail()
					}
				}
				q.RemoveApplied(txes)
			}
		})
	}
}
